// Command panclfmt parses a PanCL document and pretty-prints its tables.
// It is a smoke-test binary, not part of the core library; pretty-printing
// and CLI tooling are explicitly out of scope for the core (spec.md §1).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/cquaid/libpancl"
)

func main() {
	watch := flag.Bool("watch", false, "re-parse and re-print on every save")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: panclfmt [-watch] <file.pancl>")
	}
	path := flag.Arg(0)

	if err := printFile(path); err != nil {
		log.Fatal(err)
	}
	if !*watch {
		return
	}

	if err := watchFile(path); err != nil {
		log.Fatal(err)
	}
}

func printFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx := pancl.ParseFile(f)
	tables, err := ctx.ParseAll()
	if err != nil {
		if pos := ctx.ErrorPosition(); pos != (pancl.Position{}) {
			return fmt.Errorf("%s:%s: %w", path, pos, err)
		}
		return fmt.Errorf("%s: %w", path, err)
	}

	for _, tbl := range tables {
		printTable(tbl)
	}
	return nil
}

func printTable(tbl *pancl.Table) {
	name := "(root)"
	if tbl.Name != nil {
		name = tbl.Name.String()
	}
	fmt.Printf("[%s]\n", name)
	for _, e := range tbl.Entries {
		fmt.Printf("  %s = %s\n", e.Name, describeValue(e.Value))
	}
}

func describeValue(v pancl.Value) string {
	switch tv := v.(type) {
	case *pancl.BoolValue:
		return fmt.Sprintf("%v", tv.V)
	case *pancl.IntValue:
		return fmt.Sprintf("%d", tv.V)
	case *pancl.FloatValue:
		return fmt.Sprintf("%g", tv.V)
	case *pancl.StringValue:
		return fmt.Sprintf("%q", tv.V.String())
	case *pancl.ArrayValue:
		return describeSeq("[", "]", tv.Elems)
	case *pancl.TupleValue:
		return describeSeq("(", ")", tv.Elems)
	case *pancl.Table:
		parts := make([]string, len(tv.Entries))
		for i, e := range tv.Entries {
			parts[i] = fmt.Sprintf("%s = %s", e.Name, describeValue(e.Value))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case *pancl.CustomValue:
		return fmt.Sprintf("%s%s", tv.Name, describeSeq("(", ")", tv.Args.Elems))
	default:
		return fmt.Sprintf("%v(%v)", v.Kind(), v)
	}
}

func describeSeq(open, shut string, elems []pancl.Value) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = describeValue(e)
	}
	return open + strings.Join(parts, ", ") + shut
}

func watchFile(path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		return err
	}

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := printFile(path); err != nil {
				log.Println(err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Println(err)
		}
	}
}
