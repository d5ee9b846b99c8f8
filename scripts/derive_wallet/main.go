// derive_wallet prints the first BIP44 wallet record of a coin for a BIP39
// mnemonic, for testing against other wallets.
//
// Usage:
//
//	go run ./scripts/derive_wallet ETH "your 12 word seed phrase here"
//
// Or with stdin:
//
//	echo "your seed phrase" | go run ./scripts/derive_wallet BTC
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/complex-gh/seedforge"
	"github.com/complex-gh/seedforge/internal/logging"
)

func main() {
	logging.SetDefault(logging.GetDefault().Component("derive_wallet"))

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: derive_wallet <coin> \"seed phrase\"")
		fmt.Fprintln(os.Stderr, "   or: echo \"seed phrase\" | derive_wallet <coin>")
		os.Exit(1)
	}

	coin, err := seedforge.LookupCoin(os.Args[1])
	if err != nil {
		fatal("unknown coin", "coin", os.Args[1], "err", err)
	}

	var mnemonic string
	if len(os.Args) > 2 {
		mnemonic = strings.Join(os.Args[2:], " ")
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			mnemonic = strings.TrimSpace(scanner.Text())
		}
	}
	if mnemonic == "" {
		fatal("no mnemonic given")
	}

	codec, err := seedforge.NewMnemonic(seedforge.English)
	if err != nil {
		fatal("could not load wordlist", "err", err)
	}
	records, err := seedforge.WalletsFromMnemonic(codec, mnemonic, "", 0, coin)
	if err != nil {
		fatal("could not derive address", "coin", coin.Symbol, "err", err)
	}
	record := records[0]
	logging.Debug("wallet derived", "coin", coin.Symbol, "path", record.Path)

	fmt.Printf("%s %s\n", record.Path, record.Address)
	if record.CashAddress != "" {
		fmt.Println(record.CashAddress)
	}
}

func fatal(msg string, keyvals ...interface{}) {
	logging.Error(msg, keyvals...)
	os.Exit(1)
}
