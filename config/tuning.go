// Package config decodes a buffer's tuning surface from a
// loosely-typed attribute map, the same shape component configs arrive
// in from a JSON/proto config file, and validates it into
// pathbuffer.Options.
package config

import (
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"go.viam.com/safertl/pathbuffer"
)

// Tuning is the wire shape of a buffer's tuning surface: the four
// tuning constants plus an optional cleanup time slice, as decoded
// from a component's attribute map.
type Tuning struct {
	// PositionDeltaM is the minimum step between appended samples, in
	// meters.
	PositionDeltaM float64 `mapstructure:"position_delta_m"`
	// PruningDeltaM is the loop-closure threshold, in meters. Zero
	// means derive it from PositionDeltaM.
	PruningDeltaM float64 `mapstructure:"pruning_delta_m"`
	// RDPEpsilonM is the simplification tolerance, in meters. Zero
	// means derive it from PositionDeltaM.
	RDPEpsilonM float64 `mapstructure:"rdp_epsilon_m"`
	// MaxPathLen is the hard capacity on stored points. Zero means
	// pathbuffer.DefaultMaxPathLen.
	MaxPathLen int `mapstructure:"max_path_len"`
	// CleanupSliceMS bounds a single anytime-pass time slice, in
	// milliseconds. Zero means the pathbuffer package default.
	CleanupSliceMS int `mapstructure:"cleanup_slice_ms"`
}

// Decode populates a Tuning from a loosely-typed attribute map, the
// representation a component's configured attributes are handed to
// Validate/Reconfigure in.
func Decode(attributes map[string]interface{}) (Tuning, error) {
	var t Tuning
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		Result:           &t,
	})
	if err != nil {
		return Tuning{}, errors.Wrap(err, "config: building tuning decoder")
	}
	if err := decoder.Decode(attributes); err != nil {
		return Tuning{}, errors.Wrap(err, "config: decoding tuning attributes")
	}
	return t, nil
}

// ToOptions resolves zero fields to their defaults (PruningDeltaM to
// 1.5*PositionDeltaM, RDPEpsilonM to 0.5*PositionDeltaM, MaxPathLen to
// pathbuffer.DefaultMaxPathLen, CleanupSliceMS to the package default)
// and validates the result.
func (t Tuning) ToOptions() (pathbuffer.Options, error) {
	if t.PositionDeltaM <= 0 {
		return pathbuffer.Options{}, errors.New("config: position_delta_m must be positive")
	}

	opts := pathbuffer.DefaultOptions()
	opts.PositionDelta = t.PositionDeltaM

	opts.PruningDelta = t.PruningDeltaM
	if opts.PruningDelta == 0 {
		opts.PruningDelta = 1.5 * t.PositionDeltaM
	}

	opts.RDPEpsilon = t.RDPEpsilonM
	if opts.RDPEpsilon == 0 {
		opts.RDPEpsilon = 0.5 * t.PositionDeltaM
	}

	if t.MaxPathLen != 0 {
		opts.MaxPathLen = t.MaxPathLen
	}

	if t.CleanupSliceMS != 0 {
		opts.CleanupSlice = time.Duration(t.CleanupSliceMS) * time.Millisecond
	}

	if err := opts.Validate(); err != nil {
		return pathbuffer.Options{}, err
	}
	return opts, nil
}
