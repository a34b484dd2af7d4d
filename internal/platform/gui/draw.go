package gui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/meteor-arcade/internal/core"
	"github.com/vovakirdan/meteor-arcade/internal/games/dodge"
	"github.com/vovakirdan/meteor-arcade/internal/meteor"
)

var (
	skyColor     = color.RGBA{0x0b, 0x0e, 0x1a, 0xff}
	overlayColor = color.RGBA{0x00, 0x00, 0x00, 0xb0}
	groundTop    = rgba(core.ColorGreen)
	groundFill   = rgba(core.ColorGray)
)

// basicfont only covers Latin-1.
var asciiHUD = strings.NewReplacer(string(dodge.StrikeFull), "X", string(dodge.StrikeEmpty), "-")

func rgba(c core.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{r, g, b, 0xff}
}

func (a *App) drawWorld(screen *ebiten.Image) {
	screen.Fill(skyColor)

	s := a.game.Session()
	world := s.Config().World
	top := float32(s.GroundY())
	vector.DrawFilledRect(screen, 0, top, float32(world.Width), float32(world.Height)-top, groundFill, false)
	vector.DrawFilledRect(screen, 0, top, float32(world.Width), 3, groundTop, false)

	s.Registry().ForEach(func(e *meteor.Entity) {
		a.drawEntity(screen, e)
	})
}

func (a *App) drawEntity(screen *ebiten.Image, e *meteor.Entity) {
	clr := rgba(a.game.EntityColor(e))
	x, y, w, h := e.Body.Bounds()

	switch e.Kind {
	case meteor.KindMeteor:
		r := float32(max(w, h) / 2)
		vector.DrawFilledCircle(screen, float32(e.Body.X), float32(e.Body.Y), r, clr, true)
	case meteor.KindPlayer:
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
		if a.game.Session().PowerUp().Armed() {
			vector.DrawFilledRect(screen, float32(e.Body.X-2), float32(y-8), 4, 8, rgba(core.ColorBrightYellow), false)
		}
	default:
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
		if e.Kind == meteor.KindSecretBox {
			a.drawText(screen, "?", e.Body.X-3, y+2, color.White)
		}
	}
}

func (a *App) drawHUD(screen *ebiten.Image) {
	hud := a.game.HUD()
	sw := float64(screen.Bounds().Dx())
	sh := float64(screen.Bounds().Dy())

	a.drawText(screen, asciiHUD.Replace(hud.Left), 4, 4, rgba(core.ColorWhite))
	right := strings.TrimSpace(hud.Right)
	a.drawText(screen, right, sw-text.Advance(right, a.face)-8, 4, rgba(core.ColorYellow))

	if hud.Title == "" {
		return
	}

	lines := []string{hud.Subtitle}
	if a.game.State().GameOver {
		best := a.store.Best()
		switch {
		case a.newBest:
			lines = append(lines, "New personal best!")
		case best.Score > 0:
			lines = append(lines, fmt.Sprintf("Best: %.1fs", best.Score.Seconds()))
		}
		lines = append(lines, fmt.Sprintf("Next run: %s (D to change)", a.settings.Difficulty))
	}

	boxH := float32(36 + 18*len(lines))
	vector.DrawFilledRect(screen, 0, float32(sh/2)-boxH/2, float32(sw), boxH, overlayColor, false)

	y := sh/2 - float64(boxH)/2 + 10
	a.drawCentered(screen, hud.Title, sw, y, rgba(core.ColorBrightRed))
	for _, line := range lines {
		y += 18
		a.drawCentered(screen, line, sw, y, color.White)
	}
}

func (a *App) drawCentered(screen *ebiten.Image, s string, width, y float64, clr color.Color) {
	a.drawText(screen, s, (width-text.Advance(s, a.face))/2, y, clr)
}

func (a *App) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, a.face, op)
}
