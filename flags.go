// Package sqmon holds the plotting and command-line helpers shared by the
// dimuon monitoring commands.
package sqmon

import (
	"fmt"
	"strconv"
	"strings"
)

// FloatArrayFlags is a flag.Value collecting floats. Values may be given by
// repeating the flag or as a comma separated list. The first Set replaces
// any default held in Array.
type FloatArrayFlags struct {
	Array   []float64
	beenSet bool
}

func (f *FloatArrayFlags) Set(valueStr string) error {
	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}

	for _, field := range strings.Split(valueStr, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", field, err)
		}
		f.Array = append(f.Array, value)
	}
	return nil
}

func (f *FloatArrayFlags) String() string {
	if f == nil {
		return ""
	}
	strs := make([]string, len(f.Array))
	for i, v := range f.Array {
		strs[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(strs, ",")
}
