package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/goop/sim"
)

func TestNew(t *testing.T) {
	cam := New(sim.Vec3{X: 0.5, Y: 0.5, Z: 0.5})

	if cam.Distance != defaultDistance {
		t.Errorf("expected distance %f, got %f", float64(defaultDistance), cam.Distance)
	}
	if cam.Target.X != 0.5 {
		t.Errorf("expected target x 0.5, got %f", cam.Target.X)
	}
}

func TestPositionAtDistance(t *testing.T) {
	cam := New(sim.Vec3{X: 0.5, Y: 0.5, Z: 0.5})

	// Eye must sit exactly Distance away from the target regardless of pose.
	poses := []struct{ yaw, pitch float32 }{
		{0, 0},
		{1.3, 0.8},
		{-2.7, -1.1},
		{7.5, 1.45},
	}
	for _, p := range poses {
		cam.Yaw, cam.Pitch = p.yaw, p.pitch
		d := cam.Position().Sub(cam.Target).Length()
		if math.Abs(float64(d-cam.Distance)) > 1e-5 {
			t.Errorf("yaw=%f pitch=%f: eye distance %f, want %f", p.yaw, p.pitch, d, cam.Distance)
		}
	}
}

func TestPositionAboveHorizon(t *testing.T) {
	cam := New(sim.Vec3{})
	cam.Pitch = 0.5

	if cam.Position().Y <= 0 {
		t.Errorf("positive pitch should place eye above target, got y=%f", cam.Position().Y)
	}
}

func TestOrbitClampsPitch(t *testing.T) {
	cam := New(sim.Vec3{})

	cam.Orbit(0, 10)
	if cam.Pitch > maxPitch {
		t.Errorf("pitch %f exceeds clamp %f", cam.Pitch, float64(maxPitch))
	}
	cam.Orbit(0, -20)
	if cam.Pitch < -maxPitch {
		t.Errorf("pitch %f below clamp %f", cam.Pitch, -float64(maxPitch))
	}
}

func TestOrbitYawUnbounded(t *testing.T) {
	cam := New(sim.Vec3{})
	start := cam.Yaw

	for i := 0; i < 100; i++ {
		cam.Orbit(0.5, 0)
	}
	if math.Abs(float64(cam.Yaw-start-50)) > 1e-3 {
		t.Errorf("yaw should accumulate freely, got %f", cam.Yaw)
	}
}

func TestDollyClamp(t *testing.T) {
	cam := New(sim.Vec3{})

	cam.Dolly(0.001)
	if cam.Distance != cam.MinDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MinDistance, cam.Distance)
	}

	cam.Dolly(10000)
	if cam.Distance != cam.MaxDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MaxDistance, cam.Distance)
	}
}

func TestDrainYawTravel(t *testing.T) {
	cam := New(sim.Vec3{})

	cam.Orbit(0.3, 0)
	cam.Orbit(-0.2, 0.1)

	got := cam.DrainYawTravel()
	if math.Abs(float64(got-0.5)) > 1e-6 {
		t.Errorf("expected absolute travel 0.5, got %f", got)
	}
	if cam.DrainYawTravel() != 0 {
		t.Error("second drain should return zero")
	}
}

func TestReset(t *testing.T) {
	cam := New(sim.Vec3{X: 0.5, Y: 0.5, Z: 0.5})
	cam.Orbit(3, 1)
	cam.Dolly(2)

	cam.Reset()

	if cam.Yaw != defaultYaw || cam.Pitch != defaultPitch || cam.Distance != defaultDistance {
		t.Errorf("reset pose mismatch: yaw=%f pitch=%f dist=%f", cam.Yaw, cam.Pitch, cam.Distance)
	}
	if cam.DrainYawTravel() != 0 {
		t.Error("reset should clear yaw travel")
	}
}
