package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rigado/smpcrypto"
	"github.com/rigado/smpcrypto/smp"
	"github.com/rigado/smpcrypto/vectors"
	"github.com/urfave/cli"
)

// args decodes the positional hex arguments of a command.
type args struct {
	c   *cli.Context
	i   int
	err error
}

func newArgs(c *cli.Context, n int) *args {
	a := &args{c: c}
	if c.NArg() != n {
		a.err = errors.Errorf("%s: want %d arguments, got %d", c.Command.Name, n, c.NArg())
	}
	return a
}

func (a *args) hex(name string) []byte {
	if a.err != nil {
		return nil
	}
	s := a.c.Args().Get(a.i)
	a.i++

	b, err := hex.DecodeString(s)
	if err != nil {
		a.err = errors.Wrapf(err, "%s: argument %s", a.c.Command.Name, name)
		return nil
	}
	return b
}

func (a *args) octet(name string) byte {
	b := a.hex(name)
	if a.err == nil && len(b) != 1 {
		a.err = errors.Errorf("%s: argument %s must be a single octet", a.c.Command.Name, name)
	}
	if a.err != nil {
		return 0
	}
	return b[0]
}

func printHex(c *cli.Context, out []byte, err error) error {
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(out))
	return nil
}

func exit(err error) error {
	return cli.NewExitError(err.Error(), 1)
}

func commands() []cli.Command {
	return []cli.Command{
		{
			Name:      "aes",
			Aliases:   []string{"e"},
			Usage:     "security function e",
			ArgsUsage: "k p",
			Action: func(c *cli.Context) error {
				a := newArgs(c, 2)
				k, p := a.hex("k"), a.hex("p")
				if a.err != nil {
					return exit(a.err)
				}
				out, err := smp.E(k, p)
				return printHex(c, out, err)
			},
		},
		{
			Name:      "cmac",
			Usage:     "AES-CMAC, an empty msg is allowed",
			ArgsUsage: "key msg",
			Action: func(c *cli.Context) error {
				a := newArgs(c, 2)
				key, msg := a.hex("key"), a.hex("msg")
				if a.err != nil {
					return exit(a.err)
				}
				out, err := smp.CMAC(key, msg)
				return printHex(c, out, err)
			},
		},
		{
			Name:      "ah",
			Usage:     "random address hash",
			ArgsUsage: "k r",
			Action: func(c *cli.Context) error {
				a := newArgs(c, 2)
				k, r := a.hex("k"), a.hex("r")
				if a.err != nil {
					return exit(a.err)
				}
				out, err := smp.Ah(k, r)
				return printHex(c, out, err)
			},
		},
		{
			Name:      "c1",
			Usage:     "legacy confirm value",
			ArgsUsage: "k r preq pres iat ia rat ra",
			Action: func(c *cli.Context) error {
				a := newArgs(c, 8)
				k, r := a.hex("k"), a.hex("r")
				preq, pres := a.hex("preq"), a.hex("pres")
				iat, ia := a.octet("iat"), a.hex("ia")
				rat, ra := a.octet("rat"), a.hex("ra")
				if a.err != nil {
					return exit(a.err)
				}
				out, err := smp.C1(k, r, preq, pres, iat, ia, rat, ra)
				return printHex(c, out, err)
			},
		},
		{
			Name:      "s1",
			Usage:     "legacy STK",
			ArgsUsage: "k r1 r2",
			Action: func(c *cli.Context) error {
				a := newArgs(c, 3)
				k, r1, r2 := a.hex("k"), a.hex("r1"), a.hex("r2")
				if a.err != nil {
					return exit(a.err)
				}
				out, err := smp.S1(k, r1, r2)
				return printHex(c, out, err)
			},
		},
		{
			Name:      "f4",
			Usage:     "LE secure connections confirm value",
			ArgsUsage: "u v x z",
			Action: func(c *cli.Context) error {
				a := newArgs(c, 4)
				u, v, x, z := a.hex("u"), a.hex("v"), a.hex("x"), a.octet("z")
				if a.err != nil {
					return exit(a.err)
				}
				out, err := smp.F4(u, v, x, z)
				return printHex(c, out, err)
			},
		},
		{
			Name:      "f5",
			Usage:     "LE secure connections MacKey and LTK",
			ArgsUsage: "w n1 n2 a1 a2",
			Action: func(c *cli.Context) error {
				a := newArgs(c, 5)
				w, n1, n2 := a.hex("w"), a.hex("n1"), a.hex("n2")
				a1, a2 := a.hex("a1"), a.hex("a2")
				if a.err != nil {
					return exit(a.err)
				}
				macKey, ltk, err := smp.F5(w, n1, n2, a1, a2)
				if err != nil {
					return exit(err)
				}
				fmt.Fprintf(c.App.Writer, "mackey %x\nltk    %x\n", macKey, ltk)
				return nil
			},
		},
		{
			Name:      "f6",
			Usage:     "LE secure connections check value",
			ArgsUsage: "w n1 n2 r iocap a1 a2",
			Action: func(c *cli.Context) error {
				a := newArgs(c, 7)
				w, n1, n2, r := a.hex("w"), a.hex("n1"), a.hex("n2"), a.hex("r")
				ioCap, a1, a2 := a.hex("iocap"), a.hex("a1"), a.hex("a2")
				if a.err != nil {
					return exit(a.err)
				}
				out, err := smp.F6(w, n1, n2, r, ioCap, a1, a2)
				return printHex(c, out, err)
			},
		},
		{
			Name:      "g2",
			Usage:     "numeric comparison value",
			ArgsUsage: "u v x y",
			Action: func(c *cli.Context) error {
				a := newArgs(c, 4)
				u, v, x, y := a.hex("u"), a.hex("v"), a.hex("x"), a.hex("y")
				if a.err != nil {
					return exit(a.err)
				}
				out, err := smp.G2(u, v, x, y)
				if err != nil {
					return exit(err)
				}
				n, err := smp.NumericComparison(out)
				if err != nil {
					return exit(err)
				}
				fmt.Fprintf(c.App.Writer, "%x %06d\n", out, n)
				return nil
			},
		},
		{
			Name:      "h6",
			Usage:     "link key conversion",
			ArgsUsage: "w keyid",
			Action: func(c *cli.Context) error {
				a := newArgs(c, 2)
				w, keyID := a.hex("w"), a.hex("keyid")
				if a.err != nil {
					return exit(a.err)
				}
				out, err := smp.H6(w, keyID)
				return printHex(c, out, err)
			},
		},
		{
			Name:  "keygen",
			Usage: "generate a P-256 key pair, print the public key as X Y",
			Action: func(c *cli.Context) error {
				kp, err := smp.GenerateKeys()
				if err != nil {
					return exit(err)
				}
				xy := smp.MarshalPublicKeyXY(kp.Public())
				fmt.Fprintf(c.App.Writer, "%x %x\n", xy[:32], xy[32:])
				return nil
			},
		},
		{
			Name:  "vectors",
			Usage: "run the known answer tests",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Usage: "load vectors from a JSON `FILE` instead of the built in table",
				},
			},
			Action: runVectors,
		},
	}
}

func loadVectors(path string) ([]vectors.Vector, error) {
	if path == "" {
		return vectors.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open vectors")
	}
	defer f.Close()

	return vectors.Load(f)
}

func runVectors(c *cli.Context) error {
	vv, err := loadVectors(c.String("file"))
	if err != nil {
		return exit(err)
	}

	s, err := smp.New()
	if err != nil {
		return exit(err)
	}

	log := smpcrypto.GetLogger().ChildLogger(map[string]interface{}{"cmd": "vectors"})

	failed := 0
	for _, r := range vectors.Run(s, vv) {
		if r.Passed() {
			fmt.Fprintf(c.App.Writer, "PASS %s\n", r.Vector.Name)
			continue
		}

		failed++
		fmt.Fprintf(c.App.Writer, "FAIL %s\n", r.Vector.Name)
		if r.Err != nil {
			log.Errorf("%s: %v", r.Vector.Name, r.Err)
		} else {
			log.Errorf("%s: got %v exp %v", r.Vector.Name, r.Got, r.Vector.Out)
		}
	}

	fmt.Fprintf(c.App.Writer, "%d/%d passed\n", len(vv)-failed, len(vv))
	if failed > 0 {
		return cli.NewExitError(fmt.Sprintf("%d vectors failed", failed), 1)
	}
	return nil
}
