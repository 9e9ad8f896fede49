// Package vectors runs the SMP crypto functions against a table of known
// answers.
package vectors

import (
	_ "embed"
	"encoding/hex"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rigado/smpcrypto/smp"
)

//go:embed vectors.json
var defaultTable []byte

// Vector is one known answer test. In and Out hold hex strings keyed by
// parameter name.
type Vector struct {
	Name string            `json:"name"`
	Func string            `json:"func"`
	In   map[string]string `json:"in"`
	Out  map[string]string `json:"out"`
}

// Result of running one Vector.
type Result struct {
	Vector Vector
	Got    map[string]string
	Err    error
}

func (r Result) Passed() bool {
	if r.Err != nil || len(r.Vector.Out) == 0 {
		return false
	}
	for k, exp := range r.Vector.Out {
		if r.Got[k] != strings.ToLower(exp) {
			return false
		}
	}
	return true
}

func Load(r io.Reader) ([]Vector, error) {
	var vv []Vector
	if err := jsoniter.NewDecoder(r).Decode(&vv); err != nil {
		return nil, errors.Wrap(err, "decode vectors")
	}
	return vv, nil
}

// Default returns the built in table: the RFC 4493 examples and the
// sample data of the Bluetooth core specification.
func Default() ([]Vector, error) {
	var vv []Vector
	if err := jsoniter.Unmarshal(defaultTable, &vv); err != nil {
		return nil, errors.Wrap(err, "decode default vectors")
	}
	return vv, nil
}

func Run(s *smp.Suite, vv []Vector) []Result {
	out := make([]Result, 0, len(vv))
	for _, v := range vv {
		got, err := Eval(s, v)
		out = append(out, Result{Vector: v, Got: got, Err: err})
	}
	return out
}

type inputs struct {
	v   Vector
	err error
}

func (in *inputs) get(name string) []byte {
	if in.err != nil {
		return nil
	}

	s, ok := in.v.In[name]
	if !ok {
		in.err = errors.Errorf("missing input %q", name)
		return nil
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		in.err = errors.Wrapf(err, "input %q", name)
		return nil
	}
	return b
}

func (in *inputs) octet(name string) byte {
	b := in.get(name)
	if in.err == nil && len(b) != 1 {
		in.err = errors.Errorf("input %q must be a single octet", name)
	}
	if in.err != nil {
		return 0
	}
	return b[0]
}

// Eval computes tv.Func over tv.In and returns the hex encoded outputs.
func Eval(s *smp.Suite, tv Vector) (map[string]string, error) {
	in := &inputs{v: tv}
	var out []byte
	var err error

	switch tv.Func {
	case "e":
		k, p := in.get("k"), in.get("p")
		if in.err == nil {
			out, err = s.E(k, p)
		}
	case "cmac":
		key, msg := in.get("key"), in.get("msg")
		if in.err == nil {
			out, err = s.CMAC(key, msg)
		}
	case "ah":
		k, r := in.get("k"), in.get("r")
		if in.err == nil {
			out, err = s.Ah(k, r)
		}
	case "c1":
		k, r := in.get("k"), in.get("r")
		preq, pres := in.get("preq"), in.get("pres")
		iat, ia := in.octet("iat"), in.get("ia")
		rat, ra := in.octet("rat"), in.get("ra")
		if in.err == nil {
			out, err = s.C1(k, r, preq, pres, iat, ia, rat, ra)
		}
	case "s1":
		k, r1, r2 := in.get("k"), in.get("r1"), in.get("r2")
		if in.err == nil {
			out, err = s.S1(k, r1, r2)
		}
	case "f4":
		u, v, x, z := in.get("u"), in.get("v"), in.get("x"), in.octet("z")
		if in.err == nil {
			out, err = s.F4(u, v, x, z)
		}
	case "f5":
		w, n1, n2 := in.get("w"), in.get("n1"), in.get("n2")
		a1, a2 := in.get("a1"), in.get("a2")
		if in.err != nil {
			break
		}
		macKey, ltk, err := s.F5(w, n1, n2, a1, a2)
		if err != nil {
			return nil, errors.Wrap(err, tv.Name)
		}
		return map[string]string{
			"mackey": hex.EncodeToString(macKey),
			"ltk":    hex.EncodeToString(ltk),
		}, nil
	case "f6":
		w, n1, n2, r := in.get("w"), in.get("n1"), in.get("n2"), in.get("r")
		ioCap, a1, a2 := in.get("iocap"), in.get("a1"), in.get("a2")
		if in.err == nil {
			out, err = s.F6(w, n1, n2, r, ioCap, a1, a2)
		}
	case "g2":
		u, v, x, y := in.get("u"), in.get("v"), in.get("x"), in.get("y")
		if in.err == nil {
			out, err = s.G2(u, v, x, y)
		}
	case "h6":
		w, keyID := in.get("w"), in.get("keyid")
		if in.err == nil {
			out, err = s.H6(w, keyID)
		}
	default:
		return nil, errors.Errorf("%s: unknown function %q", tv.Name, tv.Func)
	}

	if in.err != nil {
		return nil, errors.Wrap(in.err, tv.Name)
	}
	if err != nil {
		return nil, errors.Wrap(err, tv.Name)
	}

	return map[string]string{"out": hex.EncodeToString(out)}, nil
}
