package wine

import (
	"strings"
)

// Class scopes a debug rule to a message severity.
// The zero value applies the rule to every class.
type Class int

const (
	ClassAny Class = iota
	ClassTrace
	ClassWarn
	ClassError
	ClassFixme
)

// String returns the name Wine uses for the class.
func (c Class) String() string {
	switch c {
	case ClassTrace:
		return "trace"
	case ClassWarn:
		return "warn"
	case ClassError:
		return "err"
	case ClassFixme:
		return "fixme"
	default:
		return ""
	}
}

// ParseClass maps a class name to a Class. Both "err" and "error" are accepted.
// An empty name yields ClassAny.
func ParseClass(name string) (Class, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return ClassAny, true
	case "trace":
		return ClassTrace, true
	case "warn":
		return ClassWarn, true
	case "err", "error":
		return ClassError, true
	case "fixme":
		return ClassFixme, true
	default:
		return ClassAny, false
	}
}

type channelTag int

const (
	chanOther channelTag = iota
	chanAll
	chanHeap
	chanLoadDll
	chanModule
	chanPid
	chanRelay
	chanSeh
	chanServer
	chanSnoop
	chanSynchronous
	chanTimestamp
	chanFps
	chanDebugString
	chanThreadName
)

var channelNames = map[channelTag]string{
	chanAll:         "all",
	chanHeap:        "heap",
	chanLoadDll:     "loaddll",
	chanModule:      "module",
	chanPid:         "pid",
	chanRelay:       "relay",
	chanSeh:         "seh",
	chanServer:      "server",
	chanSnoop:       "snoop",
	chanSynchronous: "synchronous",
	chanTimestamp:   "timestamp",
	chanFps:         "fps",
	chanDebugString: "debugstr",
	chanThreadName:  "threadname",
}

// Channel names a Wine debug channel. Channels are comparable: two values are
// equal only if both are the same well-known channel, or both were created by
// OtherChannel with the same name.
type Channel struct {
	tag   channelTag
	other string
}

// Well-known debug channels.
var (
	ChannelAll         = Channel{tag: chanAll}
	ChannelHeap        = Channel{tag: chanHeap}
	ChannelLoadDll     = Channel{tag: chanLoadDll}
	ChannelModule      = Channel{tag: chanModule}
	ChannelPid         = Channel{tag: chanPid}
	ChannelRelay       = Channel{tag: chanRelay}
	ChannelSeh         = Channel{tag: chanSeh}
	ChannelServer      = Channel{tag: chanServer}
	ChannelSnoop       = Channel{tag: chanSnoop}
	ChannelSynchronous = Channel{tag: chanSynchronous}
	ChannelTimestamp   = Channel{tag: chanTimestamp}
	ChannelFps         = Channel{tag: chanFps}
	ChannelDebugString = Channel{tag: chanDebugString}
	ChannelThreadName  = Channel{tag: chanThreadName}
)

// OtherChannel returns a channel that is not in the well-known set. The name is
// emitted verbatim; it must not contain ':' or ',' or the encoded rules will be
// misread by Wine.
func OtherChannel(name string) Channel {
	return Channel{tag: chanOther, other: name}
}

// ChannelByName returns the well-known channel with the given name, or an
// OtherChannel carrying the name unchanged.
func ChannelByName(name string) Channel {
	for tag, n := range channelNames {
		if n == name {
			return Channel{tag: tag}
		}
	}
	return OtherChannel(name)
}

// IsOther reports whether the channel was created by OtherChannel.
func (c Channel) IsOther() bool {
	return c.tag == chanOther
}

// String returns the channel name as Wine expects it.
func (c Channel) String() string {
	if c.tag == chanOther {
		return c.other
	}
	return channelNames[c.tag]
}

// Rule enables or disables one debug channel, optionally restricted to a
// process name and a class. An empty Process matches every process.
type Rule struct {
	Process string
	Class   Class
	Channel Channel
	Enabled bool
}

// String encodes the rule as [process:][class:](+|-)channel.
func (r Rule) String() string {
	var b strings.Builder
	r.encode(&b)
	return b.String()
}

func (r Rule) encode(b *strings.Builder) {
	if r.Process != "" {
		b.WriteString(r.Process)
		b.WriteByte(':')
	}
	if r.Class != ClassAny {
		b.WriteString(r.Class.String())
		b.WriteByte(':')
	}
	if r.Enabled {
		b.WriteByte('+')
	} else {
		b.WriteByte('-')
	}
	b.WriteString(r.Channel.String())
}

// RuleSet is an ordered, immutable list of debug rules. Later rules for the
// same channel take precedence when Wine applies them. The zero value is an
// empty set.
type RuleSet struct {
	rules []Rule
}

// Rules returns a copy of the rules in order.
func (s RuleSet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Len returns the number of rules.
func (s RuleSet) Len() int {
	return len(s.rules)
}

// IsEmpty reports whether the set has no rules.
func (s RuleSet) IsEmpty() bool {
	return len(s.rules) == 0
}

// Encode returns the WINEDEBUG value for the set. ok is false for an empty
// set, in which case the variable must not be set at all.
func (s RuleSet) Encode() (value string, ok bool) {
	if len(s.rules) == 0 {
		return "", false
	}
	var b strings.Builder
	for i, rule := range s.rules {
		if i > 0 {
			b.WriteByte(',')
		}
		rule.encode(&b)
	}
	return b.String(), true
}

// String returns the encoded set, or "" when empty.
func (s RuleSet) String() string {
	value, _ := s.Encode()
	return value
}

// RuleSetBuilder accumulates rules in order.
type RuleSetBuilder struct {
	rules []Rule
}

// NewRuleSetBuilder creates an empty builder.
func NewRuleSetBuilder() *RuleSetBuilder {
	return &RuleSetBuilder{}
}

// Add appends a rule.
func (b *RuleSetBuilder) Add(rule Rule) *RuleSetBuilder {
	b.rules = append(b.rules, rule)
	return b
}

// Enable appends an unfiltered rule turning channel on.
func (b *RuleSetBuilder) Enable(channel Channel) *RuleSetBuilder {
	return b.Add(Rule{Channel: channel, Enabled: true})
}

// Disable appends an unfiltered rule turning channel off.
func (b *RuleSetBuilder) Disable(channel Channel) *RuleSetBuilder {
	return b.Add(Rule{Channel: channel, Enabled: false})
}

// Build returns the accumulated rules as a RuleSet. The builder may keep
// being used; later additions do not affect sets already built.
func (b *RuleSetBuilder) Build() RuleSet {
	rules := make([]Rule, len(b.rules))
	copy(rules, b.rules)
	return RuleSet{rules: rules}
}
