package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/unixdj/qrsym"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
)

var g = struct {
	border   int      // quiet zone
	rev      bool     // reverse colours
	fn       string   // filename
	lev      qr.Level // QR correction level
	ver      int      // QR version
	mask     int      // forced mask pattern, or -1
	format   int      // output format
	latin1   bool     // Latin-1 byte mode
	parallel bool     // concurrent error correction and mask trials
	debug    bool     // trace encoding
}{
	border: 4,
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := make([]string, 1, 4)
	ul[0] = cl.UsageLine() + " [string ...]"
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:max(n, 0)]
		ml = 60
	}
	fmt.Fprint(w, "QR code symbol builder\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
If no string is given, data is read from standard input and the final
newline is stripped.  The data is encoded in byte mode as UTF-8 (or
Latin-1 with -1) in a symbol of the given version and level.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	bb := b.Bytes()
	if n := bytes.Index(bb, []byte(" [-1]")); n > 0 {
		w.Write(bb[:n])
		bb = bb[n+len(" [-1]"):]
	}
	w.Write(bb)
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`qr version 0.9.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2025 Vadim Vygonets`)
	os.Exit(0)
}

var formats = []string{"utf8", "utf8i", "ascii", "asciii"}

var encoders = [...]func(*qr.Code, io.Writer) error{
	utf8,
	ascii,
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.Flag(&g.latin1, '1', "convert data to Latin-1")
	getopt.Flag(&g.border, 'm', "quiet zone modules", "margin")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	getopt.Flag(&g.parallel, 'p', "run error correction and mask "+
		"trials concurrently")
	getopt.Flag(&g.debug, 'd', "trace encoding stages to standard error")
	ver := getopt.Unsigned('v', 1, &getopt.UnsignedLimit{0, 8, 1, 40},
		"QR code version", "ver")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "l",
		"error correction level, lowest to highest", "l|m|q|h")
	mask := getopt.Signed('k', -1, &getopt.SignedLimit{0, 8, -1, 7},
		"force mask pattern 0..7", "mask")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise ascii`, "type")

	getopt.Parse()
	if g.border < 0 {
		fmt.Fprintln(os.Stderr, "-m must not be negative")
		usage()
	}
	g.ver = int(*ver)
	g.lev = qr.Level(strings.Index("lmqhLMQH", *lev) & 3)
	g.mask = int(*mask)
	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(uintptr(syscall.Stdout)) {
			*ff = "utf8"
		} else {
			*ff = "ascii"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i >> 1
			g.rev = i&1 != 0
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
}

func main() {
	log.SetFlags(0)
	parseFlags()

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}

	opts := []qr.Option{qr.WithParallel(g.parallel)}
	if g.mask >= 0 {
		opts = append(opts, qr.WithMask(g.mask))
	}
	if g.latin1 {
		opts = append(opts, qr.WithCharset(qr.Latin1))
	}
	if g.debug {
		logger := slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, qr.WithTrace(func(e qr.Event) {
			logger.Debug("qr", "event", e)
		}))
	}
	c, err := qr.Encode(s, g.ver, g.lev, opts...)
	if err != nil {
		log.Fatalln(err)
	}
	write(c)
}

func write(c *qr.Code) {
	var w = os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			log.Fatalln(err)
		}
	}
	err := encoders[g.format](c, w)
	if g.fn != "" && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}

// black reports whether the module at (x,y) is drawn, taking the
// quiet zone and -t ...i into account.
func black(c *qr.Code, x, y int) bool {
	return c.Black(x, y) != g.rev
}

// utf8 draws two rows of modules per line with half blocks.  Light
// modules are drawn, as on a terminal with light text on a dark
// background.
func utf8(c *qr.Code, w io.Writer) error {
	siz := c.Size
	bord := g.border
	var b strings.Builder
	for y := -bord; y < siz+bord; y += 2 {
		for x := -bord; x < siz+bord; x++ {
			n := 0
			if black(c, x, y) {
				n |= 2
			}
			if y+1 == siz+bord || black(c, x, y+1) {
				n |= 1
			}
			b.WriteString([...]string{"█", "▀", "▄", " "}[n])
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func ascii(c *qr.Code, w io.Writer) error {
	siz := c.Size
	bord := g.border
	pix := siz + 2*bord
	b := make([]byte, (pix*2+1)*pix)
	i := 0
	for y := -bord; y < siz+bord; y++ {
		for x := -bord; x < siz+bord; x++ {
			var p byte = ' '
			if black(c, x, y) {
				p = '#'
			}
			_ = b[i+1]
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}
