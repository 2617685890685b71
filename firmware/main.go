//go:build tinygo

package main

import (
	"log"
	"os"

	"github.com/labfab/lasercam/board"
	"github.com/labfab/lasercam/firmware/commands"
	"github.com/labfab/lasercam/firmware/device"
	"github.com/labfab/lasercam/motion"
)

const (
	boardName = "pico-turret"
	shapeName = "triangle"
)

func main() {
	profile, err := board.Lookup(boardName)
	if err != nil {
		panic(err)
	}
	if err := profile.Validate(); err != nil {
		panic(err)
	}

	path, err := motion.Shape(shapeName)
	if err != nil {
		panic(err)
	}

	turret := device.NewTurret(*profile.Turret)

	player := motion.NewPlayer(motion.Config{
		X:       turret.X,
		Y:       turret.Y,
		Emitter: turret.Laser,
		Mapper:  profile.Axes,
		Cadence: motion.DefaultCadence(),
		Path:    path,
		Logger:  log.New(os.Stdout, "", 0),
	})

	go commands.Run(&device.Console{Player: player, Turret: turret})

	player.Run()
}
