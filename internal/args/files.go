package args

import (
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Files holds the opened configuration inputs. Regular files are mapped
// read-only rather than read, so their bytes are shared with the page cache;
// a bare "-" names stdin, which cannot be mapped and is read instead.
type Files struct {
	inputs []input
}

type input struct {
	name   string
	file   *os.File
	mapped mmap.MMap
	data   []byte
}

// OpenFiles opens every named input in order. On the first failure it
// closes whatever it already opened and returns an error naming the file.
func OpenFiles(names []string) (*Files, error) {
	f := &Files{inputs: make([]input, 0, len(names))}
	for _, name := range names {
		in, err := openInput(name)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("error opening file %q - %w", name, err)
		}
		f.inputs = append(f.inputs, in)
	}
	return f, nil
}

func openInput(name string) (input, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return input{}, err
		}
		return input{name: name, data: data}, nil
	}

	file, err := os.Open(name)
	if err != nil {
		return input{}, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return input{}, err
	}

	in := input{name: name, file: file}
	if info.Size() > 0 {
		// Zero-length files stay unmapped; mmap of an empty file fails
		// on some platforms.
		if in.mapped, err = mmap.Map(file, mmap.RDONLY, 0); err != nil {
			file.Close()
			return input{}, err
		}
		in.data = in.mapped
	}
	return in, nil
}

// Count returns the number of opened inputs. Safe on a nil receiver.
func (f *Files) Count() int {
	if f == nil {
		return 0
	}
	return len(f.inputs)
}

// Name returns the i-th input's name as given on the command line.
func (f *Files) Name(i int) string {
	return f.inputs[i].name
}

// Data returns the i-th input's contents. The slice aliases the mapping and
// is only valid until Close.
func (f *Files) Data(i int) []byte {
	return f.inputs[i].data
}

// Close unmaps and closes every input. Errors from individual closes are
// ignored; there is no way to recover and the remaining files still need
// closing. No-op on a nil receiver.
func (f *Files) Close() {
	if f == nil {
		return
	}
	for i := range f.inputs {
		in := &f.inputs[i]
		if in.mapped != nil {
			in.mapped.Unmap()
		}
		if in.file != nil {
			in.file.Close()
		}
	}
	f.inputs = nil
}
