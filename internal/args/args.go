// Package args parses the command line into a run configuration and a list
// of open input files. It implements GNU-style option processing: short
// options bundle, long options match by unambiguous prefix, and
// option-arguments may be given inline, after '=', or as the next argument.
package args

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Result classifies the outcome of Parse. Anything other than OK and
// NoFiles is an error; NoFiles is only acceptable when --version was asked
// for.
type Result int

const (
	// OK signals success.
	OK Result = iota
	// NoFiles signals that every argument was an option. Not necessarily
	// an error, e.g. when --version is given.
	NoFiles
	// None signals an empty command line.
	None
	// Unknown signals an unrecognized option.
	Unknown
	// InvalidUse signals an option-argument given when disallowed, or
	// omitted or malformed when required.
	InvalidUse
	// Conflict signals two incompatible options, or a repeated one.
	Conflict
	// Ambiguous signals a long option abbreviated ambiguously.
	Ambiguous
	// FileErr signals that one of the named files could not be opened.
	FileErr
)

// State is the run configuration described by the parsed options.
type State struct {
	Interactive      bool
	VersionRequested bool
	Port             uint16
}

type infoType int

const (
	infoNone infoType = iota
	infoInt
)

type optID int

const (
	optInteractive optID = iota
	optVersion
	optPort
)

// Every option is unique: repeating one is a Conflict.
type option struct {
	id    optID
	short byte
	long  string
	info  infoType
}

var validOptions = []option{
	{optInteractive, 'i', "interactive", infoNone},
	{optVersion, 'v', "version", infoNone},
	{optPort, 'p', "port", infoInt},
}

// Parse processes argv (argv[0] being the program name) into a State and
// the opened input files. On any Result other than OK, the returned Files
// is nil; the State is still returned when it was allocated so the caller
// can inspect e.g. VersionRequested on NoFiles. The error carries a
// human-readable message for every failing Result.
func Parse(argv []string) (*State, *Files, Result, error) {
	if len(argv) <= 1 {
		return nil, nil, None, ErrNoArgs
	}

	state := &State{}
	var applied uint8

	i := 1
	for i < len(argv) && strings.HasPrefix(argv[i], "-") {
		// A bare "-" means read from stdin, which is a file, not an
		// option.
		if argv[i] == "-" {
			break
		}

		// "--" ends option processing without itself being a file.
		if argv[i] == "--" {
			i++
			break
		}

		opts, info, next, res, err := processOption(argv, i)
		if res != OK {
			return state, nil, res, err
		}
		i = next

		for _, opt := range opts {
			bit := uint8(1) << opt.id
			if applied&bit != 0 {
				return state, nil, Conflict,
					fmt.Errorf("option --%s can only be applied once", opt.long)
			}
			applied |= bit

			switch opt.id {
			case optVersion:
				state.VersionRequested = true
			case optInteractive:
				state.Interactive = true
			case optPort:
				if info < 0 || info > 65535 {
					return state, nil, InvalidUse,
						fmt.Errorf("--%s can only take values between 0 and %d", opt.long, 65535)
				}
				state.Port = uint16(info)
			}
		}

		// --version makes no sense combined with anything else.
		versionBit := uint8(1) << optVersion
		if applied&versionBit != 0 && applied != versionBit {
			return state, nil, Conflict,
				fmt.Errorf("option --version cannot be combined with other options")
		}
	}

	if i == len(argv) {
		return state, nil, NoFiles, nil
	}
	if state.VersionRequested {
		return state, nil, InvalidUse, ErrVersionWithFiles
	}

	files, err := OpenFiles(argv[i:])
	if err != nil {
		return state, nil, FileErr, err
	}
	return state, files, OK, nil
}

// processOption consumes one option token starting at argv[idx], possibly
// also consuming argv[idx+1] as an option-argument. It returns the matched
// options (several for a short-option bundle), the parsed integer
// option-argument if the last option takes one, and the index of the next
// unconsumed token.
func processOption(argv []string, idx int) (opts []*option, info int64, next int, res Result, err error) {
	cur := argv[idx]
	var infoStr string
	var last *option

	if strings.HasPrefix(cur, "--") {
		name := cur[2:]
		eq := strings.IndexByte(name, '=')
		var inline string
		if eq >= 0 {
			inline = name[eq+1:]
			name = name[:eq]
		}
		name = strings.ToLower(name)

		matches := matchLong(name)
		if len(matches) == 0 {
			return nil, 0, -1, Unknown, fmt.Errorf("unknown option: --%s", name)
		}
		if len(matches) > 1 {
			names := make([]string, len(matches))
			for j, m := range matches {
				names[j] = "--" + m.long
			}
			return nil, 0, -1, Ambiguous,
				fmt.Errorf("ambiguous option: --%s; possibilities: %s", name, strings.Join(names, ", "))
		}

		last = matches[0]
		opts = []*option{last}

		switch {
		case eq >= 0:
			if last.info == infoNone {
				return nil, 0, -1, InvalidUse,
					fmt.Errorf("option --%s does not take an option-argument", last.long)
			}
			infoStr = inline
			next = idx + 1
		case last.info != infoNone:
			if idx+1 == len(argv) {
				return nil, 0, -1, InvalidUse,
					fmt.Errorf("no option-argument provided to --%s, which requires one", last.long)
			}
			infoStr = argv[idx+1]
			next = idx + 2
		default:
			return opts, 0, idx + 1, OK, nil
		}
	} else {
		short := cur[1:]

		// Count leading short options; an info-taking option ends the
		// bundle, anything after it is its argument.
		count := 0
		for count < len(short) && short[count] != '=' {
			opt := matchShort(short[count])
			if opt == nil {
				return nil, 0, -1, Unknown,
					fmt.Errorf("unknown short option -%c", short[count])
			}
			count++
			if opt.info != infoNone {
				break
			}
		}
		if count == 0 {
			return nil, 0, -1, Unknown,
				fmt.Errorf("unknown short option -%c", short[0])
		}

		opts = make([]*option, count)
		for j := 0; j < count; j++ {
			opts[j] = matchShort(short[j])
		}
		last = opts[count-1]

		if last.info == infoNone {
			if strings.IndexByte(cur, '=') >= 0 {
				return nil, 0, -1, InvalidUse,
					fmt.Errorf("option -%c does not require an option-argument", last.short)
			}
			return opts, 0, idx + 1, OK, nil
		}

		rest := short[count:]
		if rest == "" {
			if idx+1 == len(argv) {
				return nil, 0, -1, InvalidUse,
					fmt.Errorf("option -%c requires an option-argument", last.short)
			}
			infoStr = argv[idx+1]
			next = idx + 2
		} else {
			infoStr = strings.TrimPrefix(rest, "=")
			next = idx + 1
		}
	}

	info, perr := strconv.ParseInt(infoStr, 10, 32)
	if perr != nil {
		if errors.Is(perr, strconv.ErrRange) {
			return nil, 0, -1, InvalidUse,
				fmt.Errorf("option-argument %q given to --%s is out of range", infoStr, last.long)
		}
		return nil, 0, -1, InvalidUse,
			fmt.Errorf("option-argument %q given to --%s cannot be parsed as an integer", infoStr, last.long)
	}
	return opts, info, next, OK, nil
}

// matchLong finds the options whose long name starts with name, in the GNU
// manner: long options may be shortened as long as they stay unambiguous,
// and an exact match always wins.
func matchLong(name string) []*option {
	var matches []*option
	for i := range validOptions {
		opt := &validOptions[i]
		if strings.HasPrefix(opt.long, name) {
			if len(opt.long) == len(name) {
				return []*option{opt}
			}
			matches = append(matches, opt)
		}
	}
	return matches
}

func matchShort(short byte) *option {
	for i := range validOptions {
		if validOptions[i].short == short {
			return &validOptions[i]
		}
	}
	return nil
}
