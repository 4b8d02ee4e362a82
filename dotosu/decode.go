package dotosu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"osugeom/spline"
	"osugeom/timing"
)

type section int

const (
	secNone section = iota
	secGeneral
	secMetadata
	secDifficulty
	secTimingPoints
	secHitObjects
)

// object type flag bits of the hit object row.
const (
	flagCircle  = 1
	flagSlider  = 2
	flagSpinner = 8
	flagHold    = 128
)

// DecodeFile decodes the .osu file at path.
func DecodeFile(path string) (*Beatmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a .osu beatmap from r. Rows that fail to parse are
// skipped rather than failing the whole file; a malformed chain is a
// data-quality issue the timing queries already tolerate.
func Decode(r io.Reader) (*Beatmap, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var header string
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			header = line
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	const prefix = "osu file format v"
	if !strings.HasPrefix(strings.ToLower(header), prefix) {
		return nil, fmt.Errorf("dotosu: invalid header %q", header)
	}
	version, err := strconv.Atoi(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return nil, fmt.Errorf("dotosu: invalid version in header %q: %w", header, err)
	}

	b := &Beatmap{
		FormatVersion:    version,
		SliderMultiplier: 1,
		SliderTickRate:   1,
	}
	offset := 0
	if version < 5 {
		offset = earlyVersionOffset
	}

	sec := secNone
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			switch strings.ToLower(line) {
			case "[general]":
				sec = secGeneral
			case "[metadata]":
				sec = secMetadata
			case "[difficulty]":
				sec = secDifficulty
			case "[timingpoints]":
				sec = secTimingPoints
			case "[hitobjects]":
				sec = secHitObjects
			default:
				sec = secNone
			}
			continue
		}

		switch sec {
		case secGeneral:
			k, v := splitKeyVal(line)
			if strings.EqualFold(k, "Mode") {
				b.Mode = atoi(v, 0)
			}

		case secMetadata:
			k, v := splitKeyVal(line)
			switch strings.ToLower(k) {
			case "title":
				b.Title = v
			case "artist":
				b.Artist = v
			case "creator":
				b.Creator = v
			case "version":
				b.Version = v
			case "beatmapid":
				b.BeatmapID = atoi(v, 0)
			case "beatmapsetid":
				b.BeatmapSetID = atoi(v, 0)
			}

		case secDifficulty:
			k, v := splitKeyVal(line)
			switch strings.ToLower(k) {
			case "hpdrainrate":
				b.HPDrainRate = atof(v, 0)
			case "circlesize":
				b.CircleSize = atof(v, 0)
			case "overalldifficulty":
				b.OverallDifficulty = atof(v, 0)
			case "approachrate":
				b.ApproachRate = atof(v, 0)
			case "slidermultiplier":
				b.SliderMultiplier = atof(v, 1)
			case "slidertickrate":
				b.SliderTickRate = atof(v, 1)
			}

		case secTimingPoints:
			if m, ok := markerFromLine(strings.Split(line, ","), offset); ok {
				b.Markers = append(b.Markers, m)
			}

		case secHitObjects:
			if obj, ok := objectFromLine(strings.Split(line, ","), offset); ok {
				b.Objects = append(b.Objects, obj)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

func objectFromLine(parts []string, offset int) (HitObject, bool) {
	if len(parts) < 5 {
		return nil, false
	}
	pos := spline.ControlPoint{X: atoi(parts[0], 0), Y: atoi(parts[1], 0)}
	t := timing.Millis(atoi(parts[2], 0) + offset)
	flags := atoi(parts[3], 0)

	switch {
	case flags&flagHold != 0:
		end := t
		if len(parts) >= 6 {
			// "endTime:hitSample"
			endStr, _, _ := strings.Cut(parts[5], ":")
			end = timing.Millis(atoi(endStr, int(t)-offset) + offset)
		}
		return Hold{Pos: pos, Time: t, EndTime: end}, true

	case flags&flagSpinner != 0:
		end := t
		if len(parts) >= 6 {
			end = timing.Millis(atoi(parts[5], int(t)-offset) + offset)
		}
		return Spinner{Pos: pos, Time: t, EndTime: end}, true

	case flags&flagSlider != 0:
		if len(parts) < 6 {
			return nil, false
		}
		kind, control := parseSliderPath(pos, parts[5])
		if len(control) < 2 {
			return nil, false
		}
		repeats := 1
		if len(parts) >= 7 {
			repeats = atoi(parts[6], 1)
		}
		length := 0.0
		if len(parts) >= 8 {
			length = atof(parts[7], 0)
		}
		return Slider{
			Pos:         pos,
			Time:        t,
			Kind:        kind,
			Control:     control,
			Repeats:     repeats,
			PixelLength: length,
		}, true

	default:
		return Circle{Pos: pos, Time: t}, true
	}
}

// parseSliderPath converts "B|x:y|x:y|..." into a curve kind and the
// full control list with the slider head prepended.
func parseSliderPath(head spline.ControlPoint, raw string) (spline.Kind, []spline.ControlPoint) {
	kindStr, rest, _ := strings.Cut(strings.TrimSpace(raw), "|")

	var kind spline.Kind
	switch strings.ToUpper(strings.TrimSpace(kindStr)) {
	case "L":
		kind = spline.Linear
	case "P":
		kind = spline.Perfect
	case "C":
		kind = spline.Catmull
	default:
		kind = spline.Bezier
	}

	control := []spline.ControlPoint{head}
	for _, tok := range strings.Split(rest, "|") {
		xs, ys, ok := strings.Cut(strings.TrimSpace(tok), ":")
		if !ok {
			continue
		}
		control = append(control, spline.ControlPoint{
			X: atoi(xs, head.X),
			Y: atoi(ys, head.Y),
		})
	}
	return kind, control
}

func splitKeyVal(line string) (key, val string) {
	k, v, found := strings.Cut(line, ":")
	if !found {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(k), strings.TrimSpace(v)
}

func atoi(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

func atof(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}
