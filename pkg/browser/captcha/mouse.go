package captcha

import (
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// point is a coordinate on the page.
type point struct {
	x float64
	y float64
}

// mousePath generates a quadratic bezier path between two points. The
// control point sits near the midpoint with random displacement, and each
// step carries a little noise that fades out toward the target so the
// cursor lands exactly where asked.
func mousePath(start, end point, steps int) []point {
	if steps < 2 {
		steps = 2
	}

	midX := (start.x+end.x)/2 + float64(rand.Intn(101)-50)
	midY := (start.y+end.y)/2 + float64(rand.Intn(101)-50)

	path := make([]point, 0, steps)
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		inv := 1 - t

		x := inv*inv*start.x + 2*inv*t*midX + t*t*end.x
		y := inv*inv*start.y + 2*inv*t*midY + t*t*end.y

		// Less noise near the end
		x += float64(rand.Intn(7)-3) * inv
		y += float64(rand.Intn(7)-3) * inv

		path = append(path, point{x, y})
	}
	return path
}

// humanMove walks the mouse along a bezier path to the target with small
// randomized delays between steps.
func humanMove(page playwright.Page, target point) error {
	// No way to read the current cursor position, so approach from a
	// random nearby origin
	start := point{
		x: target.x + float64(rand.Intn(401)-200),
		y: target.y + float64(rand.Intn(301)-150),
	}
	if start.x < 0 {
		start.x = 0
	}
	if start.y < 0 {
		start.y = 0
	}

	steps := 15 + rand.Intn(16)
	for _, p := range mousePath(start, target, steps) {
		if err := page.Mouse().Move(p.x, p.y); err != nil {
			return err
		}
		time.Sleep(time.Duration(2+rand.Intn(9)) * time.Millisecond)
	}
	return nil
}

// humanClick moves to the target like a person would and clicks with
// randomized press timing and a couple pixels of landing error.
func humanClick(page playwright.Page, x, y float64) error {
	target := point{
		x: x + float64(rand.Intn(5)-2),
		y: y + float64(rand.Intn(5)-2),
	}

	if err := humanMove(page, target); err != nil {
		return err
	}

	// Pause before pressing, humans do not click mid-flight
	time.Sleep(time.Duration(50+rand.Intn(101)) * time.Millisecond)

	if err := page.Mouse().Down(); err != nil {
		return err
	}
	time.Sleep(time.Duration(30+rand.Intn(61)) * time.Millisecond)
	return page.Mouse().Up()
}

// humanDrag presses at start, drags along a bezier path, and releases at
// end. Used for slider challenges.
func humanDrag(page playwright.Page, start, end point) error {
	if err := humanMove(page, start); err != nil {
		return err
	}
	time.Sleep(time.Duration(100+rand.Intn(101)) * time.Millisecond)

	if err := page.Mouse().Down(); err != nil {
		return err
	}
	time.Sleep(100 * time.Millisecond)

	for _, p := range mousePath(start, end, 30) {
		if err := page.Mouse().Move(p.x, p.y); err != nil {
			page.Mouse().Up()
			return err
		}
		time.Sleep(time.Duration(10+rand.Intn(21)) * time.Millisecond)
	}

	return page.Mouse().Up()
}
