package ds1307

import "io"

// ReadRAM reads len(buf) bytes of user RAM starting at offset (0-55) in a single transaction.
func (d *Device) ReadRAM(offset uint8, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if err := checkRAM(offset, len(buf)); err != nil {
		return err
	}
	return d.read(RegRAMBegin+offset, buf)
}

// WriteRAM writes buf to user RAM starting at offset (0-55) in a single transaction.
func (d *Device) WriteRAM(offset uint8, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if err := checkRAM(offset, len(buf)); err != nil {
		return err
	}
	return d.write(RegRAMBegin+offset, buf...)
}

func checkRAM(offset uint8, n int) error {
	if offset >= RAMSize || int(offset)+n > RAMSize {
		return invalid("ram [%d, %d) outside [0, %d)", offset, int(offset)+n, RAMSize)
	}
	return nil
}

// RAM is an io.ReaderAt and io.WriterAt over the user RAM of a Device.
type RAM struct {
	dev *Device
}

// RAM returns a view of the user RAM.
func (d *Device) RAM() RAM {
	return RAM{dev: d}
}

// Size returns the number of bytes of user RAM.
func (r RAM) Size() int64 {
	return RAMSize
}

// ReadAt implements io.ReaderAt. Reads that run past the end of the RAM are shortened and return io.EOF.
func (r RAM) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, invalid("ram offset %d", off)
	}
	if off >= RAMSize {
		return 0, io.EOF
	}
	n := len(p)
	if off+int64(n) > RAMSize {
		n = int(RAMSize - off)
	}
	if err := r.dev.ReadRAM(uint8(off), p[:n]); err != nil {
		return 0, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements io.WriterAt. Writes that do not fit in the RAM are rejected without writing anything.
func (r RAM) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > RAMSize {
		return 0, invalid("ram [%d, %d) outside [0, %d)", off, off+int64(len(p)), RAMSize)
	}
	if err := r.dev.WriteRAM(uint8(off), p); err != nil {
		return 0, err
	}
	return len(p), nil
}
