package detector

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxHands != 1 {
		t.Errorf("MaxHands = %d, want 1", cfg.MaxHands)
	}
	if cfg.MinConfidence != 0.7 {
		t.Errorf("MinConfidence = %v, want 0.7", cfg.MinConfidence)
	}
	if cfg.MinTrackingConf != 0.7 {
		t.Errorf("MinTrackingConf = %v, want 0.7", cfg.MinTrackingConf)
	}
	if cfg.StaticImageMode {
		t.Error("StaticImageMode should be false for streaming")
	}
}

func TestHandLandmarks_Pixel(t *testing.T) {
	tests := []struct {
		name          string
		point         Point3D
		width, height int
		want          image.Point
	}{
		{name: "origin", point: Point3D{X: 0, Y: 0}, width: 640, height: 480, want: image.Pt(0, 0)},
		{name: "center", point: Point3D{X: 0.5, Y: 0.5}, width: 640, height: 480, want: image.Pt(320, 240)},
		{name: "truncates toward zero", point: Point3D{X: 0.999, Y: 0.999}, width: 640, height: 480, want: image.Pt(639, 479)},
		{name: "uses width for x and height for y", point: Point3D{X: 0.25, Y: 0.75}, width: 1000, height: 200, want: image.Pt(250, 150)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hand HandLandmarks
			hand.Points[IndexTip] = tt.point

			if got := hand.Pixel(IndexTip, tt.width, tt.height); got != tt.want {
				t.Errorf("Pixel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConnections_IndicesInRange(t *testing.T) {
	for _, c := range Connections {
		for _, idx := range c {
			if idx < 0 || idx >= NumLandmarks {
				t.Errorf("connection %v has out of range index %d", c, idx)
			}
		}
	}
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{OpenPalmLandmarks()})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 1 {
			t.Errorf("expected 1 hand, got %d", len(hands))
		}
	})

	t.Run("drains queue before configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{FistLandmarks()})
		mock.Queue(nil, []HandLandmarks{OpenPalmLandmarks()})

		first, _ := mock.Detect(nil)
		second, _ := mock.Detect(nil)
		third, _ := mock.Detect(nil)

		if len(first) != 0 {
			t.Errorf("first call: expected no hands, got %d", len(first))
		}
		if len(second) != 1 || second[0].Score != OpenPalmLandmarks().Score {
			t.Errorf("second call: expected open palm, got %v", second)
		}
		if len(third) != 1 || third[0].Score != FistLandmarks().Score {
			t.Errorf("third call: expected fist, got %v", third)
		}
		if mock.Calls() != 3 {
			t.Errorf("Calls() = %d, want 3", mock.Calls())
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands on error, got %v", hands)
		}
	})

	t.Run("close is recorded", func(t *testing.T) {
		mock := NewMockDetector()
		if err := mock.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
		if !mock.Closed() {
			t.Error("Closed() should be true after Close()")
		}
	})
}

func TestWithIndexTip(t *testing.T) {
	palm := OpenPalmLandmarks()
	moved := palm.WithIndexTip(0.1, 0.2)

	if moved.Points[IndexTip] != (Point3D{X: 0.1, Y: 0.2}) {
		t.Errorf("index tip = %v, want (0.1, 0.2, 0)", moved.Points[IndexTip])
	}
	if palm.Points[IndexTip].X != 0.58 {
		t.Error("WithIndexTip must not modify the receiver")
	}
}

func TestServiceArgs(t *testing.T) {
	args := serviceArgs("svc.py", DefaultConfig())
	got := strings.Join(args, " ")
	want := "svc.py --max-hands 1 --min-detection-confidence 0.7 --min-tracking-confidence 0.7"
	if got != want {
		t.Errorf("serviceArgs() = %q, want %q", got, want)
	}

	cfg := DefaultConfig()
	cfg.StaticImageMode = true
	args = serviceArgs("svc.py", cfg)
	if args[len(args)-1] != "--static-image-mode" {
		t.Errorf("expected --static-image-mode flag, got %v", args)
	}
}

func TestWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte{0xff, 0xd8, 0xff, 0xd9}

	if err := writeFrame(&buf, payload); err != nil {
		t.Fatalf("writeFrame() error = %v", err)
	}

	out := buf.Bytes()
	if len(out) != 4+len(payload) {
		t.Fatalf("wrote %d bytes, want %d", len(out), 4+len(payload))
	}
	if n := binary.BigEndian.Uint32(out[:4]); n != uint32(len(payload)) {
		t.Errorf("length prefix = %d, want %d", n, len(payload))
	}
	if !bytes.Equal(out[4:], payload) {
		t.Errorf("payload = %v, want %v", out[4:], payload)
	}
}

func TestParseResponse(t *testing.T) {
	t.Run("no hands", func(t *testing.T) {
		hands, err := parseResponse([]byte(`{"hands":[]}`+"\n"), 1)
		if err != nil {
			t.Fatalf("parseResponse() error = %v", err)
		}
		if len(hands) != 0 {
			t.Errorf("expected 0 hands, got %d", len(hands))
		}
	})

	t.Run("copies points and metadata", func(t *testing.T) {
		line := `{"hands":[{"points":[{"x":0.1,"y":0.2,"z":0.3},{"x":0.4,"y":0.5,"z":0.6}],"handedness":"Left","score":0.88}]}`
		hands, err := parseResponse([]byte(line), 1)
		if err != nil {
			t.Fatalf("parseResponse() error = %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("expected 1 hand, got %d", len(hands))
		}
		h := hands[0]
		if h.Handedness != "Left" || h.Score != 0.88 {
			t.Errorf("metadata = %s/%v", h.Handedness, h.Score)
		}
		if h.Points[1] != (Point3D{X: 0.4, Y: 0.5, Z: 0.6}) {
			t.Errorf("point 1 = %v", h.Points[1])
		}
		if h.Points[2] != (Point3D{}) {
			t.Errorf("missing points should stay zero, got %v", h.Points[2])
		}
	})

	t.Run("limits to max hands", func(t *testing.T) {
		line := `{"hands":[{"score":0.9},{"score":0.8}]}`
		hands, err := parseResponse([]byte(line), 1)
		if err != nil {
			t.Fatalf("parseResponse() error = %v", err)
		}
		if len(hands) != 1 || hands[0].Score != 0.9 {
			t.Errorf("expected first hand only, got %v", hands)
		}
	})

	t.Run("service error", func(t *testing.T) {
		if _, err := parseResponse([]byte(`{"error":"model missing"}`), 1); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		if _, err := parseResponse([]byte(`not json`), 1); err == nil {
			t.Error("expected error")
		}
	})
}

func TestNewMediaPipeDetector_ScriptPath(t *testing.T) {
	t.Run("missing explicit script", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ScriptPath = filepath.Join(t.TempDir(), "nope.py")

		if _, err := NewMediaPipeDetector(cfg, nil); err == nil {
			t.Error("expected error for missing script")
		}
	})

	t.Run("explicit script and python", func(t *testing.T) {
		script := filepath.Join(t.TempDir(), ServiceScript)
		if err := os.WriteFile(script, []byte("\n"), 0644); err != nil {
			t.Fatalf("write script: %v", err)
		}

		cfg := DefaultConfig()
		cfg.ScriptPath = script
		cfg.PythonPath = "/usr/bin/python3"

		d, err := NewMediaPipeDetector(cfg, nil)
		if err != nil {
			t.Fatalf("NewMediaPipeDetector() error = %v", err)
		}
		if d.scriptPath != script || d.pythonPath != "/usr/bin/python3" {
			t.Errorf("paths = %s, %s", d.scriptPath, d.pythonPath)
		}
		// Never started, so Close is a no-op
		if err := d.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
}
