package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds the per-frame player intents.
type Input struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed    bool
	FirePressed    bool
	MeleePressed   bool
	ReloadPressed  bool
	HealthPressed  bool
	BatteryPressed bool
	// PausePressed toggles the pause menu.
	PausePressed   bool
	RestartPressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard and the first gamepad.
func (i *Input) Update() {
	var moveX float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}

	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyUp)
	i.FirePressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	i.MeleePressed = inpututil.IsKeyJustPressed(ebiten.KeyF) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	i.ReloadPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.HealthPressed = inpututil.IsKeyJustPressed(ebiten.Key1)
	i.BatteryPressed = inpututil.IsKeyJustPressed(ebiten.Key2)
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	i.RestartPressed = inpututil.IsKeyJustPressed(ebiten.KeyEnter)

	ids := ebiten.GamepadIDs()
	if len(ids) > 0 {
		gid := ids[0]
		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			moveX = -1
		} else if leftX > 0.3 {
			moveX = 1
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
			moveX = -1
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
			moveX = 1
		}

		i.JumpPressed = i.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		i.FirePressed = i.FirePressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
		i.MeleePressed = i.MeleePressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
		i.ReloadPressed = i.ReloadPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightTop)
		i.HealthPressed = i.HealthPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonLeftTop)
		i.BatteryPressed = i.BatteryPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonLeftBottom)
		i.PausePressed = i.PausePressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}

	i.MoveX = moveX
}
