package dodge

import (
	"github.com/vovakirdan/meteor-arcade/internal/core"
	"github.com/vovakirdan/meteor-arcade/internal/meteor"
)

// Visual characters for rendering
const (
	MeteorChar    = '●'
	PlayerChar    = '█'
	BulletChar    = '|'
	GunChar       = 'G'
	SecretBoxChar = '?'
	GroundTop     = '▀'
	GroundFill    = '▒'
	StrikeFull    = '✖'
	StrikeEmpty   = '·'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.frame++

	world := g.session.Config().World
	vp := core.NewViewport(world.Width, world.Height, core.NewRect(0, 1, dst.Width(), dst.Height()-1))

	g.drawGround(dst, vp)
	g.session.Registry().ForEach(func(e *meteor.Entity) {
		g.drawEntity(dst, vp, e)
	})
	hud := g.HUD()
	dst.DrawTextColor(1, 0, hud.Left, core.ColorWhite)
	dst.DrawTextColor(dst.Width()-len([]rune(hud.Right))-1, 0, hud.Right, core.ColorYellow)
	if hud.Title != "" {
		drawCenteredMessage(dst, hud.Title, hud.Subtitle)
	}
}

func (g *Game) drawGround(dst *core.Screen, vp core.Viewport) {
	world := g.session.Config().World
	top := g.session.GroundY()
	area := vp.Box(0, top, world.Width, world.Height-top)

	dst.DrawHLine(area.X, area.Y, area.W, GroundTop, core.ColorGreen)
	dst.FillRect(core.NewRect(area.X, area.Y+1, area.W, vp.Area.Bottom()-area.Y-1), GroundFill, core.ColorGray)
}

func (g *Game) drawEntity(dst *core.Screen, vp core.Viewport, e *meteor.Entity) {
	r := vp.Box(e.Body.Bounds())
	c := g.EntityColor(e)

	switch e.Kind {
	case meteor.KindPlayer:
		if g.session.PowerUp().Armed() {
			dst.SetColor(r.X+r.W/2, r.Y-1, '^', core.ColorBrightYellow)
		}
		dst.FillRect(r, PlayerChar, c)
	case meteor.KindMeteor:
		dst.FillRect(r, MeteorChar, c)
	case meteor.KindBullet:
		x, y := vp.Point(e.Body.X, e.Body.Y)
		dst.SetColor(x, y, BulletChar, c)
	case meteor.KindGun:
		dst.FillRect(r, GunChar, c)
	case meteor.KindSecretBox:
		dst.FillRect(r, SecretBoxChar, c)
	}
}

// EntityColor is the palette entry for e in the current frame. The player
// blinks red while the hit effect runs.
func (g *Game) EntityColor(e *meteor.Entity) core.Color {
	switch e.Kind {
	case meteor.KindPlayer:
		if g.session.HitActive() && g.frame%6 < 3 {
			return core.ColorBrightRed
		}
		return core.ColorCyan
	case meteor.KindMeteor:
		return core.ColorOrange
	case meteor.KindBullet:
		return core.ColorBrightCyan
	case meteor.KindGun:
		return core.ColorBrightYellow
	case meteor.KindSecretBox:
		return core.ColorMagenta
	default:
		return core.ColorDefault
	}
}

// NextFrame counts a rendered frame for frontends that draw the world themselves.
func (g *Game) NextFrame() {
	g.frame++
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextColor(box.X+(boxW-len(title))/2, box.Y+1, title, core.ColorBrightRed)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}
