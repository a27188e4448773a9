package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Vallyiast/Projet-PNG-GIF-ITI4-INSA/engine"
)

var Commands = [...]string{"compress", "decompress", "benchmark", "help"}

func main() {
	application := os.Args[0]
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	compressCmd := flag.Bool(Commands[0], false, "Compress File")
	decompressCmd := flag.Bool(Commands[1], false, "Decompress File")
	benchmarkCmd := flag.Bool(Commands[2], false, "Benchmark")
	helpCmd := flag.Bool(Commands[3], false, "Help")

	if len(os.Args) == 1 {
		fmt.Println("Please provide commands")
		os.Exit(1)
	}
	commandArgs := findIntersection(
		[]string{
			"--compress",
			"--decompress",
			"--benchmark",
		},
		os.Args[1:],
	)
	flag.CommandLine.Parse(commandArgs)
	commandsSelected := countTrue([]bool{*compressCmd, *decompressCmd, *benchmarkCmd})
	if commandsSelected > 1 {
		fmt.Println("Specify a single command")
		os.Exit(1)
	} else if commandsSelected == 0 {
		commandArgs = findIntersection(
			[]string{
				"--help",
			},
			os.Args[1:],
		)
		flag.CommandLine.Parse(commandArgs)
		if *helpCmd {
			fmt.Fprintf(os.Stderr, "Usage of %s:\n", application)
			fmt.Fprintf(os.Stderr, "Valid commands include:\n\t%s\n", strings.Join(Commands[:], ", "))
			fmt.Fprintf(os.Stderr, "Flag:\n")
			flag.PrintDefaults()
			return
		}
		fmt.Println("No command is selected. Compression by default")
		cmdTrue := true
		compressCmd = &cmdTrue
	}

	if *compressCmd {
		compressFS := flag.NewFlagSet("compress", flag.ExitOnError)
		compressFS.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage of %s --compress [OPTIONS] <file(s)>\n", application)
			fmt.Fprintf(os.Stderr, "Valid options include:\n\t%s\n", "algorithm, delete, outfileext, help")
			fmt.Fprintf(os.Stderr, "Options take the --name=value form, e.g. --algorithm=lzw\n")
			fmt.Fprintf(os.Stderr, "Flag:\n")
			compressFS.PrintDefaults()
		}
		algorithmCompress := compressFS.String("algorithm", "deflate", fmt.Sprintf("Which algorithm(s) to use, choices include: \n\t%s", strings.Join(engine.Engines[:], ", ")))
		deleteAfterCompress := compressFS.Bool("delete", false, "Delete file after compression")
		outputFileExtensionCompress := compressFS.String("outfileext", "rsn", "File extension used for the result")
		helpCompress := compressFS.Bool("help", false, "Compress Help")
		commandArgs = findIntersectionWithValues(
			[]string{
				"--algorithm",
				"--delete",
				"--outfileext",
				"--help",
			},
			os.Args[2:],
		)
		compressFS.Parse(commandArgs)
		if *helpCompress {
			compressFS.Usage()
			return
		}
		files := collectFiles(os.Args[1:])
		engine.CompressFiles(strings.Split(*algorithmCompress, ","), files, *outputFileExtensionCompress)
		if *deleteAfterCompress {
			deleteFiles(files)
		}
	}

	if *decompressCmd {
		decompressFS := flag.NewFlagSet("decompress", flag.ExitOnError)
		decompressFS.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage of %s --decompress [OPTIONS] <file(s)>\n", application)
			fmt.Fprintf(os.Stderr, "Valid options include:\n\t%s\n", "infileext, delete, help")
			fmt.Fprintf(os.Stderr, "Options take the --name=value form, e.g. --infileext=rsn\n")
			fmt.Fprintf(os.Stderr, "Flag:\n")
			decompressFS.PrintDefaults()
		}
		inputFileExtension := decompressFS.String("infileext", "rsn", "File extension of the compressed input")
		deleteAfterDecompress := decompressFS.Bool("delete", false, "Delete file after decompression")
		helpDecompress := decompressFS.Bool("help", false, "Decompress Help")
		commandArgs = findIntersectionWithValues(
			[]string{
				"--infileext",
				"--delete",
				"--help",
			},
			os.Args[2:],
		)
		decompressFS.Parse(commandArgs)
		if *helpDecompress {
			decompressFS.Usage()
			return
		}
		files := collectFiles(os.Args[1:])
		engine.DecompressFiles(files, *inputFileExtension)
		if *deleteAfterDecompress {
			deleteFiles(files)
		}
	}

	if *benchmarkCmd {
		benchmarkFS := flag.NewFlagSet("benchmark", flag.ExitOnError)
		height := benchmarkFS.Int("height", 100, "Synthetic test image height")
		width := benchmarkFS.Int("width", 100, "Synthetic test image width")
		commandArgs = findIntersectionWithValues(
			[]string{
				"--height",
				"--width",
			},
			os.Args[2:],
		)
		benchmarkFS.Parse(commandArgs)
		fmt.Printf("Benchmarking on a %vx%v synthetic image\n", *height, *width)
		if err := engine.Benchmark(engine.SyntheticImage(*height, *width)); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
}

func countTrue(commands []bool) int {
	count := 0
	for _, c := range commands {
		if c == true {
			count++
		}
	}
	return count
}

func findIntersection(commandList, argList []string) []string {
	set := make(map[string]struct{}, len(commandList))
	for _, c := range commandList {
		set[c] = struct{}{}
	}
	var out []string
	for _, arg := range argList {
		if _, ok := set[arg]; ok {
			out = append(out, arg)
		}
	}
	return out
}

// Like findIntersection, but also keeps "--flag=value" forms.
func findIntersectionWithValues(commandList, argList []string) []string {
	set := make(map[string]struct{}, len(commandList))
	for _, c := range commandList {
		set[c] = struct{}{}
	}
	var out []string
	for _, arg := range argList {
		name, _, _ := strings.Cut(arg, "=")
		if _, ok := set[name]; ok {
			out = append(out, arg)
		}
	}
	return out
}

func collectFiles(args []string) []string {
	var fileName string
	i := 0
	for ; i < len(args) && (len(args[i]) == 0 || args[i][0] == '-'); i++ {
	}
	if i == len(args) {
		fmt.Println("No file provided")
		os.Exit(1)
	}
	fileName = args[i]
	files := strings.Split(fileName, ",")
	trimSpace(files)
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			fmt.Printf("Could not open the provided file %s\n", f)
			os.Exit(1)
		}
	}
	return files
}

func trimSpace(s []string) {
	for i := range s {
		s[i] = strings.TrimSpace(s[i])
	}
}

func deleteFiles(files []string) {
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			panic(err)
		}
	}
}
