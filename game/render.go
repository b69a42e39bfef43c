package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Shape scale factors. Each biot is drawn as nested circles sized by
// additive trait sums, with a square behind intelligent biots.
const (
	circleScale = 7.0
	squareScale = 14.0
)

// Draw renders the current frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.drawBiots()
	g.drawHUD()

	rl.EndDrawing()
}

// drawBiots renders every visible biot through the camera transform.
func (g *Game) drawBiots() {
	zoom := g.camera.Zoom

	query := g.biotFilter.Query()
	for query.Next() {
		pos, _, _, _, props := query.Get()

		outer := circleScale * (props.Photosynthesis + props.Attack + props.Defense + props.Motion)
		cullRadius := outer
		if props.Intelligence > 0 {
			cullRadius = squareScale * outer / circleScale
		}
		if !g.camera.IsVisible(pos.X, pos.Y, cullRadius) {
			continue
		}

		sx, sy := g.camera.WorldToScreen(pos.X, pos.Y)
		center := rl.Vector2{X: sx, Y: sy}

		if props.Intelligence > 0 {
			size := squareScale * (props.Photosynthesis + props.Attack + props.Defense + props.Motion) * zoom
			rl.DrawRectangleV(
				rl.Vector2{X: sx - size/2, Y: sy - size/2},
				rl.Vector2{X: size, Y: size},
				rl.Green,
			)
		}

		rl.DrawCircleV(center, outer*zoom, rl.Green)
		rl.DrawCircleV(center, circleScale*(props.Attack+props.Defense+props.Motion)*zoom, rl.Red)
		rl.DrawCircleV(center, circleScale*(props.Defense+props.Motion)*zoom, rl.DarkBlue)
		rl.DrawCircleV(center, circleScale*props.Motion*zoom, rl.Blue)
	}
}

// drawHUD renders the population counter and status overlay.
func (g *Game) drawHUD() {
	rl.DrawText(fmt.Sprintf("biots: %d", g.aliveCount), 10, 10, 20, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("tick: %d  speed: %dx", g.tick, g.stepsPerUpdate), 10, 34, 20, rl.Gray)
	rl.DrawFPS(10, 58)

	if g.paused {
		rl.DrawText("paused", 10, 82, 20, rl.Yellow)
	}
}
