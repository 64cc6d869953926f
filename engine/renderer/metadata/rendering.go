package metadata

import (
	"fmt"
	"strings"
)

/** @brief Determines which screen space winding is discarded during rasterization. */
type CullMode int

const (
	/** @brief No triangles are culled. */
	CullModeNone CullMode = iota
	/** @brief Clockwise triangles are culled. */
	CullModeCW
	/** @brief Counter-clockwise triangles are culled. */
	CullModeCCW
)

var cullModeNames = map[CullMode]string{
	CullModeNone: "none",
	CullModeCW:   "cw",
	CullModeCCW:  "ccw",
}

func (m CullMode) String() string {
	if name, ok := cullModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("CullMode(%d)", int(m))
}

func (m CullMode) MarshalText() ([]byte, error) {
	name, ok := cullModeNames[m]
	if !ok {
		return nil, fmt.Errorf("unknown cull mode %d", int(m))
	}
	return []byte(name), nil
}

func (m *CullMode) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for mode, name := range cullModeNames {
		if name == s {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown cull mode %q", string(text))
}

/** @brief The comparison applied between a candidate depth and the stored one. */
type DepthTestMode int

const (
	DepthTestNever DepthTestMode = iota
	DepthTestAlways
	DepthTestLess
	DepthTestLessEqual
	DepthTestGreater
	DepthTestGreaterEqual
	DepthTestEqual
	DepthTestNotEqual
)

var depthTestModeNames = map[DepthTestMode]string{
	DepthTestNever:        "never",
	DepthTestAlways:       "always",
	DepthTestLess:         "less",
	DepthTestLessEqual:    "less_equal",
	DepthTestGreater:      "greater",
	DepthTestGreaterEqual: "greater_equal",
	DepthTestEqual:        "equal",
	DepthTestNotEqual:     "not_equal",
}

func (m DepthTestMode) String() string {
	if name, ok := depthTestModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("DepthTestMode(%d)", int(m))
}

func (m DepthTestMode) MarshalText() ([]byte, error) {
	name, ok := depthTestModeNames[m]
	if !ok {
		return nil, fmt.Errorf("unknown depth test mode %d", int(m))
	}
	return []byte(name), nil
}

func (m *DepthTestMode) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	s = strings.ReplaceAll(s, "-", "_")
	for mode, name := range depthTestModeNames {
		if name == s {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown depth test mode %q", string(text))
}
