// Package fixer implements the §6.5 fixer contract: two operations that
// mutate a dependency manifest directly, never a source file. It decodes
// the manifest as a generic JSON object (map[string]json.RawMessage) so
// fields it doesn't know about (name, version, engines, ...) round-trip
// untouched, the same plain-encoding/json treatment internal/engine/deps
// gives the manifest on the read side.
package fixer

import (
	"encoding/json"
	"fmt"

	"github.com/sweepa/sweepa/internal/engine/deps"
)

const (
	keyDependencies     = "dependencies"
	keyDevDependencies  = "devDependencies"
	keyPeerDependencies = "peerDependencies"
)

var dependencySections = []string{keyDependencies, keyDevDependencies, keyPeerDependencies}

// RemoveDependencies deletes every name in names from every dependency
// section of the manifest. A section left empty afterward is deleted
// entirely (§6.5).
func RemoveDependencies(manifestData []byte, names []string) ([]byte, error) {
	doc, err := decode(manifestData)
	if err != nil {
		return nil, err
	}

	remove := make(map[string]bool, len(names))
	for _, name := range names {
		remove[name] = true
	}

	for _, key := range dependencySections {
		sec, err := section(doc, key)
		if err != nil {
			return nil, err
		}
		for name := range remove {
			delete(sec, name)
		}
		if err := setSection(doc, key, sec); err != nil {
			return nil, err
		}
	}

	return encode(doc)
}

// MoveDependency moves a single dependency's version string from one
// production/development section to the other (§6.5). from and to are the
// deps.SectionProduction / deps.SectionDevelopment semantic names, not raw
// JSON keys. A dependency absent from the source section is left
// unmodified.
func MoveDependency(manifestData []byte, name, from, to string) ([]byte, error) {
	fromKey, ok := sectionKey(from)
	if !ok {
		return nil, fmt.Errorf("fixer: unknown section %q", from)
	}
	toKey, ok := sectionKey(to)
	if !ok {
		return nil, fmt.Errorf("fixer: unknown section %q", to)
	}

	doc, err := decode(manifestData)
	if err != nil {
		return nil, err
	}

	fromSec, err := section(doc, fromKey)
	if err != nil {
		return nil, err
	}
	version, ok := fromSec[name]
	if !ok {
		return manifestData, nil
	}
	delete(fromSec, name)
	if err := setSection(doc, fromKey, fromSec); err != nil {
		return nil, err
	}

	toSec, err := section(doc, toKey)
	if err != nil {
		return nil, err
	}
	toSec[name] = version
	if err := setSection(doc, toKey, toSec); err != nil {
		return nil, err
	}

	return encode(doc)
}

func sectionKey(semantic string) (string, bool) {
	switch semantic {
	case deps.SectionProduction:
		return keyDependencies, true
	case deps.SectionDevelopment:
		return keyDevDependencies, true
	default:
		return "", false
	}
}

func decode(data []byte) (map[string]json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func encode(doc map[string]json.RawMessage) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

func section(doc map[string]json.RawMessage, key string) (map[string]string, error) {
	raw, ok := doc[key]
	if !ok {
		return map[string]string{}, nil
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func setSection(doc map[string]json.RawMessage, key string, m map[string]string) error {
	if len(m) == 0 {
		delete(doc, key)
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	doc[key] = raw
	return nil
}
