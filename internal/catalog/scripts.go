package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Script is a single named entry of a package.json "scripts" mapping.
type Script struct {
	Name    string
	Command string
}

// Scripts is an ordered script mapping. Order follows the YAML document so
// the generated package.json lists scripts the way the catalog declares them.
type Scripts []Script

// UnmarshalYAML decodes a YAML mapping while keeping key order.
func (s *Scripts) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("scripts: line %d: expected a mapping", node.Line)
	}
	out := make(Scripts, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name, command string
		if err := node.Content[i].Decode(&name); err != nil {
			return fmt.Errorf("scripts: decode key: %w", err)
		}
		if err := node.Content[i+1].Decode(&command); err != nil {
			return fmt.Errorf("scripts: decode %q: %w", name, err)
		}
		out = out.Set(name, command)
	}
	*s = out
	return nil
}

// MarshalJSON encodes the scripts as a JSON object in declaration order.
// Shell operators such as && are kept literal rather than HTML-escaped.
func (s Scripts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, sc := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(sc.Name); err != nil {
			return nil, err
		}
		trimNewline(&buf)
		buf.WriteByte(':')
		if err := enc.Encode(sc.Command); err != nil {
			return nil, err
		}
		trimNewline(&buf)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// trimNewline drops the newline json.Encoder appends after each value.
func trimNewline(buf *bytes.Buffer) {
	if n := buf.Len(); n > 0 && buf.Bytes()[n-1] == '\n' {
		buf.Truncate(n - 1)
	}
}

// Get returns the command registered under name.
func (s Scripts) Get(name string) (string, bool) {
	for _, sc := range s {
		if sc.Name == name {
			return sc.Command, true
		}
	}
	return "", false
}

// Set returns a copy of s with name bound to command. An existing key keeps
// its position; a new key is appended.
func (s Scripts) Set(name, command string) Scripts {
	out := make(Scripts, len(s), len(s)+1)
	copy(out, s)
	for i := range out {
		if out[i].Name == name {
			out[i].Command = command
			return out
		}
	}
	return append(out, Script{Name: name, Command: command})
}

// Merge shallow-merges over on top of s. Keys of over win on collision.
// Neither input is modified.
func (s Scripts) Merge(over Scripts) Scripts {
	out := make(Scripts, len(s), len(s)+len(over))
	copy(out, s)
	for _, sc := range over {
		out = out.Set(sc.Name, sc.Command)
	}
	return out
}
