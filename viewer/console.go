package viewer

import (
	"errors"
	"strconv"
	"strings"
)

var (
	errArgumentNumber = errors.New("invalid number of arguments")
	errInvalidCommand = errors.New("invalid command")
	errMarkerIndex    = errors.New("marker index out of range")
)

// Sessioner gives access to the current session.
type Sessioner interface {
	Session() *Viewer
}

// Console runs text commands on the current session.
type Console struct {
	target Sessioner
}

func NewConsole(target Sessioner) *Console {
	return &Console{target: target}
}

func boolRow(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func setVisible(v *Viewer, args []float64, visible func(int) bool) ([][]float64, error) {
	if len(args) != 1 {
		return nil, errArgumentNumber
	}
	i := int(args[0])
	if !visible(i) {
		return nil, errMarkerIndex
	}
	return [][]float64{{float64(i), boolRow(v.visible.Visible(i))}}, nil
}

var consoleCommands = map[string]func(v *Viewer, args []float64) ([][]float64, error){
	"maxlen": func(v *Viewer, args []float64) ([][]float64, error) {
		switch len(args) {
		case 0:
		case 1:
			v.SetTrail(int(args[0]))
		default:
			return nil, errArgumentNumber
		}
		return [][]float64{{float64(v.Trail())}}, nil
	},
	"toggle": func(v *Viewer, args []float64) ([][]float64, error) {
		return setVisible(v, args, v.visible.Toggle)
	},
	"show": func(v *Viewer, args []float64) ([][]float64, error) {
		return setVisible(v, args, func(i int) bool { return v.visible.Set(i, true) })
	},
	"hide": func(v *Viewer, args []float64) ([][]float64, error) {
		return setVisible(v, args, func(i int) bool { return v.visible.Set(i, false) })
	},
	"visible": func(v *Viewer, args []float64) ([][]float64, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		var res [][]float64
		for i := 0; i < v.visible.Len(); i++ {
			res = append(res, []float64{float64(i), boolRow(v.visible.Visible(i))})
		}
		return res, nil
	},
	"pause": func(v *Viewer, args []float64) ([][]float64, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		return [][]float64{{boolRow(v.clock.TogglePause())}}, nil
	},
	"camera": func(v *Viewer, args []float64) ([][]float64, error) {
		c := v.camera
		switch len(args) {
		case 0:
		case 3:
			if !(args[2] > 0) {
				return nil, errors.New("rho must be positive")
			}
			c.Theta, c.Phi, c.Rho = args[0], args[1], args[2]
		default:
			return nil, errArgumentNumber
		}
		return [][]float64{{c.Theta, c.Phi, c.Rho}}, nil
	},
	"reset": func(v *Viewer, args []float64) ([][]float64, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		c := v.camera
		c.Reset()
		return [][]float64{{c.Theta, c.Phi, c.Rho}}, nil
	},
	"fps": func(v *Viewer, args []float64) ([][]float64, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		return [][]float64{{v.clock.FrameRate()}}, nil
	},
	"markers": func(v *Viewer, args []float64) ([][]float64, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		var res [][]float64
		for i, t := range v.trails {
			p, ok := t.Last()
			if !ok {
				continue
			}
			res = append(res, []float64{float64(i), float64(p[0]), float64(p[1]), float64(p[2])})
		}
		return res, nil
	},
	"lines": func(v *Viewer, args []float64) ([][]float64, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		return [][]float64{{boolRow(v.ToggleConnect())}}, nil
	},
}

// Run executes one command line. Results are printed with 3 decimals, one
// row per line.
func (c *Console) Run(line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", nil
	}
	fn, ok := consoleCommands[args[0]]
	if !ok {
		return "", errInvalidCommand
	}
	var argsFloat []float64
	for i := 1; i < len(args); i++ {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return "", err
		}
		argsFloat = append(argsFloat, f)
	}
	res, err := fn(c.target.Session(), argsFloat)
	if err != nil {
		return "", err
	}
	var resStr []string
	for _, vv := range res {
		var resLine []string
		for _, v := range vv {
			resLine = append(resLine, strconv.FormatFloat(v, 'f', 3, 64))
		}
		resStr = append(resStr, strings.Join(resLine, " "))
	}
	return strings.Join(resStr, "\n"), nil
}
