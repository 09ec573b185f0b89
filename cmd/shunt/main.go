package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	flag "github.com/spf13/pflag"

	"github.com/arithmech/shunt"
)

func main() {
	log.SetFlags(0)
	var (
		vars       []string
		noImplicit bool
		check      bool
	)
	flag.StringArrayVar(&vars, "var", nil, `name=value variable binding (repeatable)`)
	flag.BoolVar(&noImplicit, "no-implicit", false, "disable implicit multiplication")
	flag.BoolVar(&check, "check", false, "validate the expressions instead of evaluating them")
	flag.Parse()

	bindings := make(map[string]decimal.Decimal, len(vars))
	for _, v := range vars {
		name, value, ok := strings.Cut(v, "=")
		if !ok {
			log.Fatalf(`variable bindings must be "name=value", not %q`, v)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			log.Fatalf("binding %s: %v", name, err)
		}
		bindings[strings.TrimSpace(name)] = d
	}

	exprs := flag.Args()
	if len(exprs) == 0 {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				exprs = append(exprs, line)
			}
		}
		if err := sc.Err(); err != nil {
			log.Fatal(err)
		}
	}

	code := 0
	for _, src := range exprs {
		if err := run(src, bindings, noImplicit, check); err != nil {
			log.Println(src+":", err)
			code = 1
		}
	}
	os.Exit(code)
}

func run(src string, bindings map[string]decimal.Decimal, noImplicit, check bool) error {
	b := shunt.NewBuilder(src).ImplicitMultiplication(!noImplicit)
	for name := range bindings {
		b.Variable(name)
	}
	e, err := b.Build()
	if err != nil {
		return err
	}
	e.SetVariables(bindings)
	if check {
		res := e.Validate(true)
		if !res.Valid {
			return errors.New(strings.Join(res.Errors, "; "))
		}
		fmt.Println("ok")
		return nil
	}
	r, err := e.Evaluate()
	if err != nil {
		return err
	}
	fmt.Println(r)
	return nil
}
