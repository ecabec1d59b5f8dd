package settings

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/microconf/internal/ctxlog"
	"github.com/specialistvlad/microconf/internal/keypath"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Extensions lists the settings file extensions LoadFile understands besides
// plain text.
var Extensions = []string{".hcl", ".yaml", ".yml", ".conf"}

// LoadFile populates the store from a settings file, choosing the format by
// extension: .hcl, .yaml/.yml, anything else is read as `key=value` text.
func (s *Store) LoadFile(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)

	// #nosec G304 -- settings paths come from trusted flags.
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read settings file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		err = s.LoadHCL(src, path)
	case ".yaml", ".yml":
		err = s.LoadYAML(src, path)
	default:
		err = s.LoadText(bytes.NewReader(src), path)
	}
	if err != nil {
		return err
	}
	logger.Debug("Settings file applied.", "path", path)
	return nil
}

// LoadText reads `key=value` lines. Lines starting with '#' and blank lines
// are skipped; everything after the first '=' is the value, verbatim, so a
// value may itself contain '#' or '='.
func (s *Store) LoadText(r io.Reader, origin string) error {
	scanner := bufio.NewScanner(r)
	num := 0
	for scanner.Scan() {
		num++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return fmt.Errorf("%s:%d: expected key=value, got %q", origin, num, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if err := s.Set(key, value, fmt.Sprintf("%s:%d", origin, num)); err != nil {
			return fmt.Errorf("%s:%d: %w", origin, num, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", origin, err)
	}
	return nil
}

// LoadHCL reads an HCL body. Block types and labels become key segments and
// attributes become leaves, so
//
//	server "web" {
//	  port = 9090
//	  ssl { is_active = true }
//	}
//
// sets server.web.port and server.web.ssl.is_active. Object-valued attributes
// are flattened the same way.
func (s *Store) LoadHCL(src []byte, filename string) error {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL settings %s: %w", filename, diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return fmt.Errorf("failed to parse HCL settings %s: unexpected body type %T", filename, file.Body)
	}
	return s.loadHCLBody(body, keypath.Path{})
}

func (s *Store) loadHCLBody(body *hclsyntax.Body, prefix keypath.Path) error {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	// Attributes is a map; apply in source order so errors are deterministic.
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	for _, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("evaluate %s: %w", attr.SrcRange, diags)
		}
		origin := attr.SrcRange.String()
		if err := s.setFlattened(prefix.Child(attr.Name), val, origin); err != nil {
			return fmt.Errorf("%s: %w", origin, err)
		}
	}

	for _, block := range body.Blocks {
		child := prefix.Child(block.Type).Child(block.Labels...)
		if err := s.loadHCLBody(block.Body, child); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) setFlattened(path keypath.Path, val cty.Value, origin string) error {
	ty := val.Type()
	if !val.IsNull() && (ty.IsObjectType() || ty.IsMapType()) {
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			if err := s.setFlattened(path.Child(k.AsString()), v, origin); err != nil {
				return err
			}
		}
		return nil
	}
	if val.IsNull() {
		return nil
	}
	if !ty.IsPrimitiveType() {
		return fmt.Errorf("%s: %w: only primitive values can be assigned, got %s", path, ErrInvalidValue, ty.FriendlyName())
	}
	return s.SetValue(path.String(), val, origin)
}

// LoadYAML reads a YAML document of nested mappings; mapping keys become key
// segments and scalars become values. A key may also be written pre-dotted,
// e.g. `server.web.port: 9090`.
func (s *Store) LoadYAML(src []byte, origin string) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML settings %s: %w", origin, err)
	}
	if doc.Kind == 0 {
		return nil // empty document
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return fmt.Errorf("%s: expected a YAML document", origin)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("%s:%d: top level must be a mapping", origin, root.Line)
	}
	return s.loadYAMLNode(root, nil, origin)
}

func (s *Store) loadYAMLNode(node *yaml.Node, prefix []string, origin string) error {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := strings.TrimSpace(node.Content[i].Value)
			if err := s.loadYAMLNode(node.Content[i+1], append(append([]string(nil), prefix...), key), origin); err != nil {
				return err
			}
		}
		return nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil
		}
		name := keypath.Join(prefix...)
		where := fmt.Sprintf("%s:%d", origin, node.Line)
		if err := s.Set(name, node.Value, where); err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
		return nil
	case yaml.AliasNode:
		return s.loadYAMLNode(node.Alias, prefix, origin)
	default:
		return fmt.Errorf("%s:%d: %s: only scalar values can be assigned", origin, node.Line, keypath.Join(prefix...))
	}
}
