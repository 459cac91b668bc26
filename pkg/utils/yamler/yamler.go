// Package yamler builds yaml.Node trees, to emit YAML documents with comments and ordered keys.
package yamler

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func Text(value string, options ...Option) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	for _, opt := range options {
		n = opt(n)
	}
	return n
}

// Quoted is a double-quoted Text. Use this for values which can be empty.
func Quoted(value string, options ...Option) *yaml.Node {
	return Text(value, append([]Option{WithStyle(yaml.DoubleQuotedStyle)}, options...)...)
}

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

func Number[N Numeric](n N, options ...Option) *yaml.Node {
	return Text(fmt.Sprint(n), options...)
}

type Option func(*yaml.Node) *yaml.Node

func WithStyle(s yaml.Style) Option {
	return func(n *yaml.Node) *yaml.Node {
		n.Style |= s
		return n
	}
}

func WithHeadComment(comment string) Option {
	return func(n *yaml.Node) *yaml.Node {
		n.HeadComment = comment
		return n
	}
}

func WithLineComment(comment string) Option {
	return func(n *yaml.Node) *yaml.Node {
		n.LineComment = comment
		return n
	}
}

func Seq(s ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: s}
}

// FlowSeq is a Seq written in one line, like `[a, b, c]`.
func FlowSeq(s ...*yaml.Node) *yaml.Node {
	n := Seq(s...)
	n.Style = yaml.FlowStyle
	return n
}

type MapEntry struct {
	Key   *yaml.Node
	Value *yaml.Node
}

func Entry(k *yaml.Node, v *yaml.Node) MapEntry {
	return MapEntry{Key: k, Value: v}
}

func Map(e ...MapEntry) *yaml.Node {
	content := []*yaml.Node{}

	for _, ee := range e {
		content = append(content, ee.Key)
		content = append(content, ee.Value)
	}

	return &yaml.Node{Kind: yaml.MappingNode, Content: content}
}
