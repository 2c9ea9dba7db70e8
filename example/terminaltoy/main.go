// Command terminaltoy renders the jiggle toy in a terminal: move the
// mouse across the blob to smack it, fill the rage bar, watch it
// explode and respawn. Requires a terminal with mouse reporting.
package main

import (
	"flag"
	"math"
	"os"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/akmonengine/jiggle"
	"github.com/akmonengine/jiggle/audio"
	"github.com/akmonengine/jiggle/config"
	"github.com/akmonengine/jiggle/logger"
	"github.com/akmonengine/jiggle/mesh"
)

const frameInterval = 33 * time.Millisecond

// shade ramp from dark to bright.
var shades = []rune(".:-=+*#%@")

func main() {
	tuningPath := flag.String("tuning", "", "path to a YAML tuning file")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	cfg, err := config.Load(*tuningPath)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	session := jiggle.NewSession(cfg, time.Now().UnixNano())
	sphere := mesh.NewUVSphere("blob", 1.0, 28, 18)
	session.AddSurface(sphere)

	if !*mute {
		sm := audio.NewSoundManager()
		sm.Initialize()
		defer sm.Cleanup()
		sm.AttachTo(session)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Sugar.Fatalw("screen init failed", "err", err)
	}
	if err := screen.Init(); err != nil {
		logger.Sugar.Fatalw("screen init failed", "err", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	logger.Sugar.Infow("terminaltoy started", "vertices", sphere.VertexCount())

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	tracker := jiggle.NewPointerTracker(cfg.Pointer)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	lastTick := time.Now()
	lastMouse := time.Now()

	for {
		select {
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventKey:
				switch {
				case e.Key() == tcell.KeyEscape, e.Key() == tcell.KeyCtrlC, e.Rune() == 'q':
					return
				case e.Rune() == 'r':
					session.Reset()
				}
			case *tcell.EventMouse:
				now := time.Now()
				dt := now.Sub(lastMouse).Seconds()
				lastMouse = now

				cx, cy := e.Position()
				tracker.Track(float64(cx), float64(cy), dt)

				// Grazing the blob with a near-still pointer is not a smack.
				if tracker.Intensity() > 0.02 {
					w, h := screen.Size()
					ray := screenRay(cx, cy, w, h)
					if hit, ok := mesh.Pick(ray, session.Surfaces); ok {
						session.Smack(hit, tracker.Intensity())
					}
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			now := time.Now()
			dt := now.Sub(lastTick).Seconds()
			lastTick = now

			session.Step(dt)
			draw(screen, session, sphere)
		}
	}
}

// projection maps world space to screen cells orthographically, with
// the 2:1 cell aspect folded into the x scale. screenRay shoots
// straight down -z through the picked cell, matching the projection.

func worldToScreen(p mgl64.Vec3, w, h int) (int, int) {
	scale := float64(h) / 4.0
	x := float64(w)/2 + p.X()*scale*2
	y := float64(h)/2 - p.Y()*scale
	return int(math.Round(x)), int(math.Round(y))
}

func screenRay(cx, cy, w, h int) mesh.Ray {
	scale := float64(h) / 4.0
	wx := (float64(cx) - float64(w)/2) / (scale * 2)
	wy := (float64(h)/2 - float64(cy)) / scale
	return mesh.Ray{
		Origin: mgl64.Vec3{wx, wy, 5},
		Dir:    mgl64.Vec3{0, 0, -1},
	}
}

func draw(screen tcell.Screen, session *jiggle.Session, sphere *mesh.Surface) {
	screen.Clear()
	w, h := screen.Size()

	pos, scale, rot := session.Pose()
	orient := mgl64.AnglesToQuat(rot.X(), rot.Y(), rot.Z(), mgl64.XYZ)

	if sphere.Visible {
		drawSurface(screen, sphere, pos, scale, orient, session.Rage.Level(), w, h)
	}
	drawParticles(screen, session.Burst, w, h)
	drawStatus(screen, session, w, h)

	screen.Show()
}

type shadedPoint struct {
	x, y  int
	depth float64
	light float64
}

func drawSurface(screen tcell.Screen, s *mesh.Surface, pos mgl64.Vec3, scale float64, orient mgl64.Quat, rage float64, w, h int) {
	lightDir := mgl64.Vec3{0.4, 0.6, 0.7}.Normalize()

	points := make([]shadedPoint, 0, s.VertexCount())
	for i, local := range s.Positions {
		p := orient.Rotate(local.Mul(scale)).Add(pos)
		sx, sy := worldToScreen(p, w, h)
		if sx < 0 || sx >= w || sy < 0 || sy >= h-1 {
			continue
		}
		n := orient.Rotate(s.Normals[i])
		points = append(points, shadedPoint{
			x: sx, y: sy,
			depth: p.Z(),
			light: math.Max(0, n.Dot(lightDir)),
		})
	}

	// Back to front so near vertices win the cell.
	sort.Slice(points, func(i, j int) bool { return points[i].depth < points[j].depth })

	// Tint from green toward red as rage rises.
	t := rage / 100.0
	color := tcell.NewRGBColor(int32(80+175*t), int32(220-160*t), 60)
	style := tcell.StyleDefault.Foreground(color)

	for _, pt := range points {
		shade := shades[int(pt.light*float64(len(shades)-1))]
		screen.SetContent(pt.x, pt.y, shade, nil, style)
	}
}

func drawParticles(screen tcell.Screen, burst *jiggle.Burst, w, h int) {
	if !burst.Active() {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorOrange)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	for i := range burst.Particles {
		p := &burst.Particles[i]
		sx, sy := worldToScreen(p.Position, w, h)
		if sx < 0 || sx >= w || sy < 0 || sy >= h-1 {
			continue
		}
		st := style
		if p.Opacity < 0.4 {
			st = dim
		}
		screen.SetContent(sx, sy, '*', nil, st)
	}
}

func drawStatus(screen tcell.Screen, session *jiggle.Session, w, h int) {
	var label string
	switch session.Phase() {
	case jiggle.PhaseExploding:
		label = "BOOM"
	case jiggle.PhaseRespawning:
		label = "respawning"
	default:
		label = "smack it"
	}

	barWidth := w - len(label) - 14
	if barWidth < 4 {
		barWidth = 4
	}
	filled := int(session.Rage.Level() / 100.0 * float64(barWidth))

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	rageStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)

	col := 0
	for _, r := range label + "  rage [" {
		screen.SetContent(col, h-1, r, nil, style)
		col++
	}
	for i := 0; i < barWidth; i++ {
		r := ' '
		st := style
		if i < filled {
			r = '|'
			st = rageStyle
		}
		screen.SetContent(col, h-1, r, nil, st)
		col++
	}
	for _, r := range "] q:quit" {
		screen.SetContent(col, h-1, r, nil, style)
		col++
	}
}
