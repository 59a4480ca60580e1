// Command rubin-headerd hosts a ChainEngine: it accepts headers fed to
// it over stdin (one hex-encoded header per line, the wire format
// ParseHeader expects) and reports the resulting tip, height, and
// locator. It is a thin demonstration host, not a networked node — a
// real deployment wires ChainEngine.Add to whatever peer-sync transport
// carries headers.
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"rubin.dev/node/consensus"
	"rubin.dev/node/node"
	"rubin.dev/node/node/store"
)

func cmdAddMain(argv []string) int {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	datadir := fs.String("datadir", "", "data directory root (enables snapshot persistence)")
	chainIDHex := fs.String("chain-id", "devnet", "chain identifier used as the snapshot subdirectory")
	network := fs.String("network", "mainnet", "mainnet, testnet, or regtest")
	_ = fs.Parse(argv)

	engine, snap, err := openEngine(*datadir, *chainIDHex, *network)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open error:", err)
		return 1
	}
	if snap != nil {
		defer func() { _ = snap.Close() }()
		if err := engine.RestoreSnapshot(snap); err != nil {
			fmt.Fprintln(os.Stderr, "no usable snapshot, starting from genesis:", err)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	count := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		wire, err := hex.DecodeString(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, "skip: bad hex:", err)
			continue
		}
		h, err := consensus.ParseHeader(wire)
		if err != nil {
			fmt.Fprintln(os.Stderr, "skip: parse error:", err)
			continue
		}
		if err := engine.Add(h); err != nil {
			fmt.Fprintln(os.Stderr, "rejected:", err)
			continue
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "read stdin:", err)
		return 1
	}

	tip := engine.Tip()
	tipHash := tip.Hash()
	fmt.Printf("accepted %d header(s)\n", count)
	fmt.Printf("tip height: %d\n", engine.Height())
	fmt.Printf("tip hash:   %s\n", hex.EncodeToString(tipHash[:]))

	if snap != nil {
		if err := engine.SaveSnapshot(snap); err != nil {
			fmt.Fprintln(os.Stderr, "snapshot save error:", err)
			return 1
		}
	}
	return 0
}

func cmdLocatorMain(argv []string) int {
	fs := flag.NewFlagSet("locator", flag.ExitOnError)
	datadir := fs.String("datadir", "", "data directory root to restore from")
	chainIDHex := fs.String("chain-id", "devnet", "chain identifier used as the snapshot subdirectory")
	network := fs.String("network", "mainnet", "mainnet, testnet, or regtest")
	_ = fs.Parse(argv)

	if *datadir == "" {
		fmt.Fprintln(os.Stderr, "missing required flag: --datadir")
		return 2
	}

	engine, snap, err := openEngine(*datadir, *chainIDHex, *network)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open error:", err)
		return 1
	}
	defer func() { _ = snap.Close() }()

	if err := engine.RestoreSnapshot(snap); err != nil {
		fmt.Fprintln(os.Stderr, "restore error:", err)
		return 1
	}

	loc := engine.BuildLocator()
	fmt.Printf("locator: %d hash(es)\n", loc.HashCount)
	for _, h := range loc.Hashes {
		fmt.Println(hex.EncodeToString(h[:]))
	}
	return 0
}

// openEngine builds a fresh ChainEngine seeded with the devnet genesis,
// opening a Snapshotter under datadir when one is given.
func openEngine(datadir, chainIDHex, network string) (*node.ChainEngine, *store.Snapshotter, error) {
	cfg := node.Config{Network: network}
	engine, err := node.NewChainEngine(cfg, node.DevnetGenesis(), node.SystemClock{}, nil, node.NewStdLogger())
	if err != nil {
		return nil, nil, fmt.Errorf("new engine: %w", err)
	}

	if datadir == "" {
		return engine, nil, nil
	}
	snap, err := store.Open(datadir, chainIDHex)
	if err != nil {
		return nil, nil, fmt.Errorf("open snapshot: %w", err)
	}
	return engine, snap, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: rubin-headerd <command> [flags]")
	fmt.Fprintln(os.Stderr, "commands: add, locator")
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	command := os.Args[1]
	argv := os.Args[2:]
	exitCode := 0
	switch command {
	case "add":
		exitCode = cmdAddMain(argv)
	case "locator":
		exitCode = cmdLocatorMain(argv)
	default:
		fmt.Fprintln(os.Stderr, "unknown command")
		printUsage()
		exitCode = 2
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
