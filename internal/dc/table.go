// Copyright (c) 2025 @AmarnathCJD

package dc

// DefaultPort is the port every Telegram data center listens on for MTProto over TCP.
const DefaultPort = 443

// ------------------ Telegram Data Center Configs ------------------

var productionDataCenters = []Entry{
	{ID: 1, Address: "149.154.175.58", Port: DefaultPort},
	{ID: 2, Address: "149.154.167.50", Port: DefaultPort},
	{ID: 3, Address: "149.154.175.100", Port: DefaultPort},
	{ID: 4, Address: "149.154.167.91", Port: DefaultPort},
	{ID: 5, Address: "91.108.56.151", Port: DefaultPort},

	{ID: 1, IPv6: true, Address: "2001:b28:f23d:f001::a", Port: DefaultPort},
	{ID: 2, IPv6: true, Address: "2001:67c:4e8:f002::a", Port: DefaultPort},
	{ID: 3, IPv6: true, Address: "2001:b28:f23d:f003::a", Port: DefaultPort},
	{ID: 4, IPv6: true, Address: "2001:67c:4e8:f004::a", Port: DefaultPort},
	{ID: 5, IPv6: true, Address: "2001:b28:f23f:f005::a", Port: DefaultPort},
}

var testDataCenters = []Entry{
	{ID: 1, Test: true, Address: "149.154.175.10", Port: DefaultPort},
	{ID: 2, Test: true, Address: "149.154.167.40", Port: DefaultPort},
	{ID: 3, Test: true, Address: "149.154.175.117", Port: DefaultPort},

	{ID: 1, Test: true, IPv6: true, Address: "2001:b28:f23d:f001::e", Port: DefaultPort},
	{ID: 2, Test: true, IPv6: true, Address: "2001:67c:4e8:f002::e", Port: DefaultPort},
	{ID: 3, Test: true, IPv6: true, Address: "2001:b28:f23d:f003::e", Port: DefaultPort},
}

// DefaultEntries returns a copy of the built-in data center table.
func DefaultEntries() []Entry {
	out := make([]Entry, 0, len(productionDataCenters)+len(testDataCenters))
	out = append(out, productionDataCenters...)
	return append(out, testDataCenters...)
}
