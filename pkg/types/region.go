// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RegionEntry holds the probe addresses published for one region.
// Address lists keep first-seen order and never repeat an address.
type RegionEntry struct {
	Region string   `json:"region" yaml:"region"`
	IPv4   []string `json:"ipv4" yaml:"ipv4"`
	IPv6   []string `json:"ipv6" yaml:"ipv6"`
}

// Address family labels used in flat output.
const (
	TypeIPv4 = "IPv4"
	TypeIPv6 = "IPv6"
)

// Record is one (region, address type, address) row of the flat projection
// used by the CSV serializer.
type Record struct {
	Region  string
	Type    string
	Address string
}

// Flatten projects entries into records: for each region its IPv4 rows
// followed by its IPv6 rows.
func Flatten(entries []RegionEntry) []Record {
	var out []Record
	for _, e := range entries {
		for _, ip := range e.IPv4 {
			out = append(out, Record{Region: e.Region, Type: TypeIPv4, Address: ip})
		}
		for _, ip := range e.IPv6 {
			out = append(out, Record{Region: e.Region, Type: TypeIPv6, Address: ip})
		}
	}
	return out
}
