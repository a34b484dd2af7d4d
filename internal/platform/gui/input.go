package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/meteor-arcade/internal/core"
)

// input is what one tick of keyboard, mouse and touch produced.
type input struct {
	frame            core.InputFrame
	quit             bool
	toggleFullscreen bool
	toggleSound      bool
	cycleDifficulty  bool
	volume           float64 // Volume change requested this tick
}

var tapKeys = []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter, ebiten.KeyArrowUp, ebiten.KeyW}

func readInput() input {
	in := input{frame: core.NewInputFrame()}

	for _, k := range tapKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.frame.Set(core.ActionTap)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.frame.Set(core.ActionTap)
	}
	if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		in.frame.Set(core.ActionTap)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		in.frame.Set(core.ActionPause)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		in.frame.Set(core.ActionRestart)
	}

	in.quit = inpututil.IsKeyJustPressed(ebiten.KeyQ)
	in.toggleFullscreen = inpututil.IsKeyJustPressed(ebiten.KeyF) || inpututil.IsKeyJustPressed(ebiten.KeyF11)
	in.toggleSound = inpututil.IsKeyJustPressed(ebiten.KeyM)
	in.cycleDifficulty = inpututil.IsKeyJustPressed(ebiten.KeyD)

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		in.volume = -0.1
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		in.volume = 0.1
	}
	return in
}
