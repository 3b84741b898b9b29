// SPDX-License-Identifier: MIT

// elfdump prints the headers, symbols and relocations of a 64-bit ELF
// object, as interpreted by the elf package.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/portabletools/elfkit/elf"
)

var cfg struct {
	verbose bool
	path    string
}

func main() {
	app := kingpin.New(filepath.Base(os.Args[0]), "Inspect 64-bit ELF object files.").UsageWriter(os.Stdout)
	app.HelpFlag.Short('h')
	app.Flag("verbose", "Enable verbose logging.").Short('v').BoolVar(&cfg.verbose)

	headerCmd := app.Command("header", "Show the file header.")
	sectionsCmd := app.Command("sections", "List sections.")
	symbolsCmd := app.Command("symbols", "List symbols.")
	relocsCmd := app.Command("relocs", "List relocations.")
	for _, cmd := range []*kingpin.CmdClause{headerCmd, sectionsCmd, symbolsCmd, relocsCmd} {
		cmd.Arg("file", "ELF file to inspect.").Required().ExistingFileVar(&cfg.path)
	}

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := log.NewLogfmtLogger(os.Stderr)
	if cfg.verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	f, err := readFile(logger, cfg.path)
	if err != nil {
		level.Error(logger).Log("msg", "reading ELF file", "path", cfg.path, "err", err)
		os.Exit(1)
	}

	switch cmd {
	case headerCmd.FullCommand():
		printHeader(f)
	case sectionsCmd.FullCommand():
		printSections(f)
	case symbolsCmd.FullCommand():
		printSymbols(f)
	case relocsCmd.FullCommand():
		printRelocations(f)
	}
}

func readFile(logger log.Logger, path string) (*elf.File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := elf.Read(fh)
	if err != nil {
		return nil, err
	}

	level.Debug(logger).Log(
		"msg", "parsed ELF file",
		"path", path,
		"sections", len(f.Sections),
		"symbols", len(f.Symbols),
	)
	return f, nil
}

func printHeader(f *elf.File) {
	fmt.Printf("Class:    ELF64\n")
	if f.Data == elf.ELFDATA2MSB {
		fmt.Printf("Data:     2's complement, big endian\n")
	} else {
		fmt.Printf("Data:     2's complement, little endian\n")
	}
	fmt.Printf("Type:     %s\n", f.Type)
	fmt.Printf("Machine:  %s\n", f.Machine)
	fmt.Printf("Version:  %d\n", f.Version)
	fmt.Printf("Entry:    0x%x\n", f.Entry)
	fmt.Printf("Flags:    0x%x\n", f.Flags)
}

func sectionFlags(flags elf.SectionFlag) string {
	s := ""
	if flags&elf.SHF_WRITE != 0 {
		s += "W"
	}
	if flags&elf.SHF_ALLOC != 0 {
		s += "A"
	}
	if flags&elf.SHF_EXECINSTR != 0 {
		s += "X"
	}
	return s
}

var (
	execColor = color.New(color.FgRed).SprintFunc()
	nameColor = color.New(color.FgCyan).SprintFunc()
	weakColor = color.New(color.FgYellow).SprintFunc()
)

func printSections(f *elf.File) {
	fmt.Printf("%-4s %-20s %-10s %-18s %10s %5s %5s\n",
		"Idx", "Name", "Type", "Addr", "Size", "Align", "Flags")
	for i, sec := range f.Sections {
		name := nameColor(sec.Name)
		if sec.Flags&elf.SHF_EXECINSTR != 0 {
			name = execColor(sec.Name)
		}
		fmt.Printf("%-4d %-20s %-10s 0x%016x %10s %5d %5s\n",
			i, name, sec.Type, sec.Addr, sizeOf(sec), sec.AddrAlign, sectionFlags(sec.Flags))
	}
}

func sizeOf(sec *elf.Section) string {
	size := sec.Size
	if sec.Type.HasDataInFile() {
		size = uint64(len(sec.Data))
	}
	return humanize.IBytes(size)
}

func printSymbols(f *elf.File) {
	fmt.Printf("%-4s %-18s %8s %-8s %-8s %-20s %s\n",
		"Num", "Value", "Size", "Type", "Bind", "Section", "Name")
	for i, sym := range f.Symbols {
		section := "UND"
		if sym.Section != nil {
			section = sym.Section.Name
		} else if sym.SectionIndex == elf.SHN_ABS {
			section = "ABS"
		} else if sym.SectionIndex == elf.SHN_COMMON {
			section = "COM"
		}

		name := sym.Name
		if sym.Binding == elf.STB_WEAK {
			name = weakColor(name)
		}
		fmt.Printf("%-4d 0x%016x %8d %-8s %-8s %-20s %s\n",
			i, sym.Value, sym.Size, sym.Type, sym.Binding, section, name)
	}
}

func printRelocations(f *elf.File) {
	for _, sec := range f.Sections {
		rels := f.Relocations[sec]
		if len(rels) == 0 {
			continue
		}

		fmt.Printf("Relocations for %s (%d entries):\n", nameColor(sec.Name), len(rels))
		fmt.Printf("  %-18s %-20s %-24s %s\n", "Offset", "Type", "Symbol", "Addend")
		for _, rel := range rels {
			symbol := ""
			if rel.Symbol != nil {
				symbol = rel.Symbol.Name
			}
			fmt.Printf("  0x%016x %-20s %-24s %d\n", rel.Offset, rel.Type, symbol, rel.Addend)
		}
	}
}
