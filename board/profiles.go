package board

import (
	"github.com/labfab/lasercam/camera"
	"github.com/labfab/lasercam/motion"
)

// turretAxes is the calibrated range of the pan/tilt bracket
var turretAxes = motion.Mapper{
	X: motion.Axis{Min: 40, Max: 160},
	Y: motion.Axis{Min: 40, Max: 160},
}

var profiles = map[string]Profile{
	"esp-eye": {
		Name:       "esp-eye",
		Family:     FamilyESP32,
		FastMemory: true,
		Camera: &CameraPins{
			PWDN: NC, Reset: NC, XCLK: 4, SDA: 18, SCL: 23,
			D:     [8]int{34, 13, 14, 35, 39, 38, 37, 36},
			VSYNC: 5, HREF: 27, PCLK: 25,
			LED: 22,
		},
		PullUps: []int{13, 14},
	},
	"ai-thinker": {
		Name:       "ai-thinker",
		Family:     FamilyESP32,
		FastMemory: true,
		Camera: &CameraPins{
			PWDN: 32, Reset: NC, XCLK: 0, SDA: 26, SCL: 27,
			D:     [8]int{5, 18, 19, 21, 36, 39, 34, 35},
			VSYNC: 25, HREF: 23, PCLK: 22,
			LED: 4,
		},
	},
	"wrover-kit": {
		Name:       "wrover-kit",
		Family:     FamilyESP32,
		FastMemory: true,
		Camera: &CameraPins{
			PWDN: NC, Reset: NC, XCLK: 21, SDA: 26, SCL: 27,
			D:     [8]int{4, 5, 18, 19, 36, 39, 34, 35},
			VSYNC: 25, HREF: 23, PCLK: 22,
			LED: NC,
		},
	},
	"esp32s3-eye": {
		Name:       "esp32s3-eye",
		Family:     FamilyESP32S3,
		FastMemory: true,
		Camera: &CameraPins{
			PWDN: NC, Reset: NC, XCLK: 15, SDA: 4, SCL: 5,
			D:     [8]int{11, 9, 8, 10, 12, 18, 17, 16},
			VSYNC: 6, HREF: 7, PCLK: 13,
			LED: NC,
		},
		Orientation: camera.Orientation{VFlip: true},
	},
	"xiao-esp32s3": {
		Name:       "xiao-esp32s3",
		Family:     FamilyESP32S3,
		FastMemory: true,
		Camera: &CameraPins{
			PWDN: NC, Reset: NC, XCLK: 10, SDA: 40, SCL: 39,
			D:     [8]int{15, 17, 18, 16, 14, 12, 11, 48},
			VSYNC: 38, HREF: 47, PCLK: 13,
			LED: NC,
		},
	},
	"m5stack-wide": {
		Name:       "m5stack-wide",
		Family:     FamilyESP32,
		FastMemory: true,
		Camera: &CameraPins{
			PWDN: NC, Reset: 15, XCLK: 27, SDA: 22, SCL: 23,
			D:     [8]int{32, 35, 34, 5, 39, 18, 36, 19},
			VSYNC: 25, HREF: 26, PCLK: 21,
			LED: 2,
		},
		Orientation: camera.Orientation{VFlip: true, HMirror: true},
	},
	"esp32-devkit": {
		Name:   "esp32-devkit",
		Family: FamilyESP32,
		Turret: &TurretPins{Laser: 18, ServoX: 12, ServoY: 14},
		Axes:   turretAxes,
	},
	"pico-turret": {
		Name:   "pico-turret",
		Family: FamilyRP2040,
		Turret: &TurretPins{Laser: 18, ServoX: 12, ServoY: 14},
		Axes:   turretAxes,
	},
}
