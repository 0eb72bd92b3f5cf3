package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/joho/godotenv"

	"EnigmaNetz/Enigma-Go-DAQ/config"
	"EnigmaNetz/Enigma-Go-DAQ/internal/capture"
	"EnigmaNetz/Enigma-Go-DAQ/internal/daq"
	"EnigmaNetz/Enigma-Go-DAQ/internal/logger"
	"EnigmaNetz/Enigma-Go-DAQ/internal/module"
	"EnigmaNetz/Enigma-Go-DAQ/internal/version"
)

func printHelp() {
	fmt.Print(`Enigma DAQ Config - Capture Backend Configuration Tool

Usage: daq-config [--version|-v] [--help|-h] [-config path] [-input name] [-var key[=value]]... [-json]

Resolves the DAQ configuration a capture backend would be instantiated with
and prints it.

Options:
  -config path        Config file (JSON, or YAML with a .yaml/.yml extension)
  -input name         Override the DAQ input (interface or file)
  -var key[=value]    Set a backend variable; may be repeated
  -json               Print the configuration as JSON
  --version, -v       Print version and exit
  --help, -h          Show this help message and exit

Environment:
  A .env file in the working directory is loaded first. DAQ_MODULE,
  DAQ_INPUT, DAQ_SNAPLEN and DAQ_MODE override the config file.

Example:
  daq-config -config config.yaml -var buffer_size_mb=128 -var debug
`)
}

// varFlags collects repeated -var arguments in order
type varFlags []string

func (v *varFlags) String() string {
	return strings.Join(*v, ",")
}

func (v *varFlags) Set(s string) error {
	*v = append(*v, s)
	return nil
}

func defaultConfigPaths() []string {
	if runtime.GOOS == "windows" {
		return []string{
			`C:\\ProgramData\\EnigmaSensor\\daq.json`,
			"config.json",
		}
	}
	return []string{
		"/etc/enigma-sensor/daq.json",
		"config.json",
	}
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		case "--version", "-v":
			fmt.Println(version.Version)
			return
		}
	}

	configPath := flag.String("config", "", "Path to config file")
	input := flag.String("input", "", "Override the DAQ input")
	asJSON := flag.Bool("json", false, "Print the configuration as JSON")
	var vars varFlags
	flag.Var(&vars, "var", "Backend variable key[=value] (repeatable)")
	flag.Usage = printHelp
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	paths := defaultConfigPaths()
	if *configPath != "" {
		paths = []string{*configPath}
	}
	var cfg *config.Config
	var err error
	for _, path := range paths {
		cfg, err = config.LoadConfig(path)
		if err == nil {
			break
		}
	}
	if cfg == nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Fatalf("Failed to apply environment overrides: %v", err)
	}
	if *input != "" {
		cfg.DAQ.Input = *input
	}

	if err := cfg.InitializeLogging(); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	l := logger.GetLogger()
	defer l.Close()

	reg := module.NewRegistry()
	if err := module.RegisterBuiltins(reg); err != nil {
		l.Error("Failed to register builtin modules: %v", err)
		os.Exit(1)
	}

	dcfg, err := cfg.BuildDAQConfig(reg, l)
	if err != nil {
		l.Error("Failed to build DAQ config: %v (status %s)", err, daq.StatusOf(err))
		os.Exit(1)
	}
	defer dcfg.Destroy()

	for _, arg := range vars {
		key, value, err := daq.ParseVariable(arg)
		if err == nil {
			err = dcfg.SetVariable(key, value)
		}
		if err != nil {
			l.Error("Failed to set variable %q: %v", arg, err)
			os.Exit(1)
		}
	}

	desc, err := reg.Descriptor(dcfg.Module())
	if err != nil {
		l.Error("Failed to resolve module: %v", err)
		os.Exit(1)
	}
	if !desc.SupportsMode(dcfg.Mode().String()) {
		l.Warn("Module %s does not support mode %s", desc.Name, dcfg.Mode())
	}

	opts, err := capture.OptionsFromDAQ(dcfg)
	if err != nil {
		l.Error("Invalid capture options: %v", err)
		os.Exit(1)
	}
	l.Debug("Capture options: %+v", opts)

	if *asJSON {
		s, err := dcfg.Proto(reg)
		if err != nil {
			l.Error("Failed to export config: %v", err)
			os.Exit(1)
		}
		data, err := daq.MarshalJSON(s)
		if err != nil {
			l.Error("Failed to marshal config: %v", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Module:   %s\n", desc)
	fmt.Printf("Input:    %s\n", dcfg.Input())
	fmt.Printf("Snaplen:  %d\n", dcfg.Snaplen())
	fmt.Printf("Timeout:  %dms\n", dcfg.Timeout())
	fmt.Printf("Mode:     %s\n", dcfg.Mode())
	fmt.Printf("Flags:    %#x\n", uint32(dcfg.Flags()))
	fmt.Println("Variables:")
	for v, ok := dcfg.FirstVariable(); ok; v, ok = dcfg.NextVariable() {
		fmt.Printf("  %s\n", v)
	}
}
