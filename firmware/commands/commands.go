package commands

import (
	"errors"
	"io"
	"strconv"

	"github.com/labfab/lasercam/motion"
)

type Command struct {
	Flag        byte
	InputSize   uint
	Run         func(Controller, []byte) error
	Description string
}

// Controller is used to control a turret
type Controller interface {
	SetShape(name string) error
	Snapshot() error
	Debug()
	Verbose()

	// I/O
	ReadByte() (byte, error)
}

var (
	ShapeCommand = &Command{
		Flag:      'P',
		InputSize: 1,
		Run: func(c Controller, input []byte) error {
			names := motion.ShapeNames()
			i := b2i(input[0])
			if i <= 0 || i > len(names) {
				return errors.New("invalid input: " + string(input))
			}
			return c.SetShape(names[i-1])
		},
		Description: "Select the path played from the next cycle. Input: " + shapeChoices() + ".",
	}
	SnapshotCommand = &Command{
		Flag:      'S',
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			return c.Snapshot()
		},
		Description: "Save the current camera frame.",
	}
	DebugCommand = &Command{
		Flag:      'D',
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.Debug()
			return nil
		},
		Description: "Print the current state.",
	}
	VerboseCommand = &Command{
		Flag:      'V',
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.Verbose()
			return nil
		},
		Description: "Toggle verbose output.",
	}
	HelpCommand = &Command{
		Flag:        'H',
		InputSize:   0,
		Description: "Show all available commands and their descriptions.",
		Run: func(c Controller, b []byte) error {
			println("Available Commands:")
			for _, cmd := range commands {
				println(string(cmd.Flag) + ": " + cmd.Description)
			}
			return nil
		},
	}
)

var commands = []*Command{
	ShapeCommand,
	SnapshotCommand,
	DebugCommand,
	VerboseCommand,
}

func b2i(b byte) int {
	v := int(b) - '0'
	if v < 1 || v > 9 {
		return 0
	}
	return v
}

func shapeChoices() string {
	out := ""
	for i, name := range motion.ShapeNames() {
		if i > 0 {
			out += ", "
		}
		out += strconv.Itoa(i+1) + " (" + name + ")"
	}
	return out
}

// Run reads and executes commands until the input ends. Unknown flags are skipped
func Run(c Controller) {
	cmdMap := map[byte]*Command{
		HelpCommand.Flag: HelpCommand,
	}

	for _, cmd := range commands {
		cmdMap[cmd.Flag] = cmd
	}

	for {
		cmdIn, err := c.ReadByte()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			continue
		}

		cmd, ok := cmdMap[cmdIn]
		if !ok {
			continue
		}

		in := make([]byte, cmd.InputSize)
		for i := 0; i < int(cmd.InputSize); {
			b, err := c.ReadByte()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				continue
			}

			in[i] = b
			i++
		}

		err = cmd.Run(c, in)
		if err != nil {
			println("error:", err.Error())
		}
	}
}
