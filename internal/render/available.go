package render

import (
	"github.com/oakwood-commons/tabletron/internal/config"
	"github.com/oakwood-commons/tabletron/pkg/layout"
)

// Available picks the width to render at. An explicit flag wins: 0 means
// detect, negative means unbounded. Otherwise the config's width applies,
// then the detected terminal width.
func Available(flag int, flagSet bool, f *config.File, detect func() int) (int, error) {
	if flagSet {
		switch {
		case flag < 0:
			return layout.Unbounded, nil
		case flag > 0:
			return flag, nil
		}
		return detect(), nil
	}
	if f != nil {
		w, err := config.ParseAvailable(f.Width)
		if err != nil {
			return 0, err
		}
		if w != nil {
			return *w, nil
		}
	}
	return detect(), nil
}
