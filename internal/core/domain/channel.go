package domain

import (
	"sort"
	"strings"
)

// PairSeparator joins two channel names into a pair key.
const PairSeparator = " + "

// Channel categories known to the default reference table.
const (
	ChannelTV             = "TV"
	ChannelRadio          = "Radio"
	ChannelInternet       = "Internet"
	ChannelOOH            = "OOH"
	ChannelMetro          = "Metro"
	ChannelMall           = "Mall"
	ChannelBusinessCenter = "BusinessCenter"
	ChannelAirport        = "Airport"
	ChannelPress          = "Press"
	ChannelOther          = "Other"
)

// DefaultChannels returns the ordered default channel category set.
// A fresh slice is returned on every call.
func DefaultChannels() []string {
	return []string{
		ChannelTV,
		ChannelRadio,
		ChannelInternet,
		ChannelOOH,
		ChannelMetro,
		ChannelMall,
		ChannelBusinessCenter,
		ChannelAirport,
		ChannelPress,
		ChannelOther,
	}
}

// PairKey is the canonical unordered identifier of a channel pair.
type PairKey string

// NewPairKey sorts the two names and joins them with PairSeparator,
// so NewPairKey(a, b) == NewPairKey(b, a).
func NewPairKey(a, b string) PairKey {
	names := []string{a, b}
	sort.Strings(names)
	return PairKey(names[0] + PairSeparator + names[1])
}

// ParsePairKey recognises an "A + B" column name.
// It returns the canonical key and true, or false if name is not a pair.
func ParsePairKey(name string) (PairKey, bool) {
	if !strings.Contains(name, PairSeparator) {
		return "", false
	}
	parts := strings.Split(name, PairSeparator)
	if len(parts) != 2 {
		return "", false
	}
	return NewPairKey(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])), true
}

// Channels returns the two channel names in the key, in sorted order.
func (k PairKey) Channels() (string, string) {
	a, b, _ := strings.Cut(string(k), PairSeparator)
	return a, b
}

// String returns the string representation.
func (k PairKey) String() string {
	return string(k)
}
