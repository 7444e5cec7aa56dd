package config_test

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/safertl/config"
)

func TestDecodeAndToOptionsAppliesDefaults(t *testing.T) {
	tuning, err := config.Decode(map[string]interface{}{
		"position_delta_m": 3.0,
	})
	test.That(t, err, test.ShouldBeNil)

	opts, err := tuning.ToOptions()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, opts.PositionDelta, test.ShouldEqual, 3.0)
	test.That(t, opts.PruningDelta, test.ShouldEqual, 4.5)
	test.That(t, opts.RDPEpsilon, test.ShouldEqual, 1.5)
	test.That(t, opts.MaxPathLen, test.ShouldEqual, 100)
}

func TestDecodeHonorsExplicitOverrides(t *testing.T) {
	tuning, err := config.Decode(map[string]interface{}{
		"position_delta_m": 2.0,
		"pruning_delta_m":  10.0,
		"rdp_epsilon_m":    0.1,
		"max_path_len":     200,
		"cleanup_slice_ms": 1,
	})
	test.That(t, err, test.ShouldBeNil)

	opts, err := tuning.ToOptions()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, opts.PruningDelta, test.ShouldEqual, 10.0)
	test.That(t, opts.RDPEpsilon, test.ShouldEqual, 0.1)
	test.That(t, opts.MaxPathLen, test.ShouldEqual, 200)
	test.That(t, opts.CleanupSlice.Milliseconds(), test.ShouldEqual, int64(1))
}

func TestDecodeWeaklyTypesStringNumbers(t *testing.T) {
	tuning, err := config.Decode(map[string]interface{}{
		"position_delta_m": "2.5",
		"max_path_len":     "50",
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tuning.PositionDeltaM, test.ShouldEqual, 2.5)
	test.That(t, tuning.MaxPathLen, test.ShouldEqual, 50)
}

func TestToOptionsRejectsNonPositivePositionDelta(t *testing.T) {
	tuning, err := config.Decode(map[string]interface{}{"position_delta_m": 0.0})
	test.That(t, err, test.ShouldBeNil)

	_, err = tuning.ToOptions()
	test.That(t, err, test.ShouldNotBeNil)
}

func TestToOptionsRejectsMaxPathLenTooSmall(t *testing.T) {
	tuning, err := config.Decode(map[string]interface{}{
		"position_delta_m": 2.0,
		"max_path_len":     5,
	})
	test.That(t, err, test.ShouldBeNil)

	_, err = tuning.ToOptions()
	test.That(t, err, test.ShouldNotBeNil)
}
