package verify

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/decantra/bgverify/gates"
	"github.com/decantra/bgverify/images"
)

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()
	v, err := New(gates.DefaultConfig(), zerolog.Nop())
	require.NoError(t, err)
	return v
}

func constantGrayBuffer(w, h int, v uint8) *images.PixelBuffer {
	buf := images.NewPixelBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.SetRGB(x, y, v, v, v)
		}
	}
	return buf
}

// nightSkyBuffer builds a 400x200 frame that satisfies the contrast, star and
// floor gates: a vertical gray gradient spanning luma 20..179 with fifty
// star-bright pixels dropped into each background band.
func nightSkyBuffer() *images.PixelBuffer {
	const w, h = 400, 200
	buf := images.NewPixelBuffer(w, h)
	for y := 0; y < h; y++ {
		v := uint8(20 + (160*y)/h)
		for x := 0; x < w; x++ {
			buf.SetRGB(x, y, v, v, v)
		}
	}
	for i := 0; i < 50; i++ {
		y := 52 + i
		buf.SetRGB(3+(i*3)%30, y, 255, 255, 255)
		buf.SetRGB(353+(i*3)%30, y, 255, 255, 255)
	}
	return buf
}

func findResult(t *testing.T, img ImageReport, name string) gates.Result {
	t.Helper()
	for _, res := range img.Results {
		if res.Name == name {
			return res
		}
	}
	t.Fatalf("result %q not found", name)
	return gates.Result{}
}

func TestRunPerImageGates(t *testing.T) {
	v := newTestVerifier(t)
	report := v.Run(Request{
		Targets: []Target{{Name: "night-sky.png", Buffer: nightSkyBuffer()}},
	})

	require.Len(t, report.Images, 1)
	img := report.Images[0]
	require.Equal(t, "night-sky.png", img.Name)
	require.Len(t, img.Results, 4)

	require.Equal(t, gates.StatusPass, findResult(t, img, gates.NameCloud).Status)
	require.Equal(t, gates.StatusPass, findResult(t, img, gates.NameStars).Status)
	require.Equal(t, gates.StatusPass, findResult(t, img, gates.NameFloor).Status)
	// A smooth gradient has clouds and stars but no sharp layer boundaries.
	require.Equal(t, gates.StatusFail, findResult(t, img, gates.NameBoundary).Status)
	require.False(t, report.Passed)
}

func TestRunMotionPass(t *testing.T) {
	v := newTestVerifier(t)
	report := v.Run(Request{
		MotionFrames: []*images.PixelBuffer{
			constantGrayBuffer(400, 200, 40),
			constantGrayBuffer(400, 200, 90),
			constantGrayBuffer(400, 200, 140),
		},
		RequireMotion: true,
	})

	require.NotNil(t, report.Motion)
	require.Equal(t, gates.StatusPass, report.Motion.Status)
	require.Len(t, report.MotionMetrics.ROIs, 2)
	require.True(t, report.Passed)
	require.False(t, report.InputMissing())
}

func TestRunMotionRequiredButMissing(t *testing.T) {
	v := newTestVerifier(t)
	report := v.Run(Request{RequireMotion: true})

	require.NotNil(t, report.Motion)
	require.Equal(t, gates.StatusUnavailable, report.Motion.Status)
	require.NotEmpty(t, report.Unresolved)
	require.True(t, report.InputMissing())
	require.False(t, report.Passed)
}

func TestRunMotionOptionalAndMissingIsSkipped(t *testing.T) {
	v := newTestVerifier(t)
	report := v.Run(Request{})

	require.Nil(t, report.Motion)
	require.False(t, report.InputMissing())
	require.True(t, report.Passed)
}

func TestRunThemeSeparation(t *testing.T) {
	v := newTestVerifier(t)
	report := v.Run(Request{
		Levels: map[int]*images.PixelBuffer{
			1:  constantGrayBuffer(400, 200, 10),
			12: constantGrayBuffer(400, 200, 100),
			24: constantGrayBuffer(400, 200, 200),
		},
		RequireTheme: true,
	})

	require.NotNil(t, report.Theme)
	require.Equal(t, gates.StatusPass, report.Theme.Status)
	require.Contains(t, report.Theme.Details[0], "Level 1 vs 12")
	require.True(t, report.Passed)
}

func TestRunThemeIdenticalLevelsFail(t *testing.T) {
	v := newTestVerifier(t)
	same := constantGrayBuffer(400, 200, 90)
	report := v.Run(Request{
		Levels:       map[int]*images.PixelBuffer{1: same, 10: same, 20: same},
		RequireTheme: true,
	})

	require.Equal(t, gates.StatusFail, report.Theme.Status)
	require.False(t, report.Passed)
}

func TestRunThemeRequiredButLevelsMissing(t *testing.T) {
	v := newTestVerifier(t)
	report := v.Run(Request{
		Levels:       map[int]*images.PixelBuffer{1: constantGrayBuffer(400, 200, 10)},
		RequireTheme: true,
	})

	require.NotNil(t, report.Theme)
	require.Equal(t, gates.StatusUnavailable, report.Theme.Status)
	require.True(t, report.InputMissing())
	require.False(t, report.Passed)
}

func TestRunExtendedChecks(t *testing.T) {
	v := newTestVerifier(t)
	red := images.NewPixelBuffer(400, 200)
	blue := images.NewPixelBuffer(400, 200)
	for y := 0; y < 200; y++ {
		for x := 0; x < 400; x++ {
			red.SetRGB(x, y, 220, 30, 30)
			blue.SetRGB(x, y, 30, 30, 220)
		}
	}
	report := v.Run(Request{
		Targets:  []Target{{Name: "level-1.png", Buffer: nightSkyBuffer()}},
		Levels:   map[int]*images.PixelBuffer{1: red, 12: blue},
		Extended: true,
	})

	require.Len(t, report.Images[0].Results, 8)
	require.Equal(t, gates.StatusPass,
		findResult(t, report.Images[0], gates.NameEdgeSeam).Status)
	require.Equal(t, gates.StatusPass,
		findResult(t, report.Images[0], gates.NameBlackout).Status)
	require.NotNil(t, report.Palette)
	require.Equal(t, gates.StatusPass, report.Palette.Status)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := gates.DefaultConfig()
	cfg.MotionDeltaMin = 0
	_, err := New(cfg, zerolog.Nop())
	require.Error(t, err)
}

func TestVerifierIsSafeForConcurrentRuns(t *testing.T) {
	v := newTestVerifier(t)
	buf := nightSkyBuffer()
	done := make(chan *Report, 4)
	for i := 0; i < 4; i++ {
		go func() {
			done <- v.Run(Request{Targets: []Target{{Name: "a", Buffer: buf}}})
		}()
	}
	first := <-done
	for i := 0; i < 3; i++ {
		next := <-done
		require.Equal(t, first.Passed, next.Passed)
		require.Equal(t, first.Images[0].Results, next.Images[0].Results)
	}
}
