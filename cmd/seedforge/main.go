// Package main provides the seedforge CLI for turning human randomness into
// BIP39 phrases and multi-coin wallets.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/complex-gh/seedforge"
	"github.com/complex-gh/seedforge/internal/config"
	"github.com/complex-gh/seedforge/internal/logging"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	maxWidth = 72
)

var (
	baseStyle  = lipgloss.NewStyle().Margin(0, 0, 1, 2) //nolint:mnd
	red        = lipgloss.Color(completeColor("#FF4444", "196", "9"))
	errorStyle = baseStyle.
			Foreground(red).
			Background(lipgloss.AdaptiveColor{Light: completeColor("#FFEBEB", "255", "7"), Dark: completeColor("#2B1A1A", "235", "8")}).
			Padding(1, 2) //nolint:mnd
	labelStyle = lipgloss.NewStyle().Bold(true)

	configPath string
	language   string
	logLevel   string
	tierName   string
	variant    string

	baseName      string
	showBits      bool
	strength      int
	generateWords int
	wordsName     string
	passphrase    string
	askPass       bool
	coinSymbols   []string
	rootKey       string
	account       uint32
	change        uint32
	index         uint32
	count         uint32
	neuter        bool
	showRoot      bool
	force         bool

	cfg   *config.Config
	codec *seedforge.Mnemonic

	rootCmd = &cobra.Command{
		Use:   "seedforge",
		Short: "Turn dice, cards and coin flips into BIP39 phrases and wallets",
		Long: `Turn dice, cards and coin flips into BIP39 phrases and wallets.

Entropy is typed in as any of: binary (0/1), dice (1-6), base 6 (0-5),
base 10, hexadecimal or playing cards (AH 2C KS ...). The lowest density
alphabet that fits the input is detected automatically.

SECURITY TIP: Add a space before the command to prevent it from being
saved in your shell history. Most shells (bash, zsh) are configured to
ignore commands that start with a space.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	classifyCmd = &cobra.Command{
		Use:   "classify [entropy]",
		Short: "Detect the alphabet of an entropy string and count its bits",
		Example: `  seedforge classify 0110100101
  seedforge classify "AH 2C KS 9D"
  seedforge classify --base dice 1212121212`,
		Args: cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			raw, err := readInput(args)
			if err != nil {
				return err
			}
			forced, err := seedforge.ParseBaseTag(baseName)
			if err != nil {
				return err
			}

			result := seedforge.FromString(raw, forced)
			if result.Empty() {
				return seedforge.ErrNoEntropy
			}
			logging.Debug("entropy classified", "base", result.Base.Tag, "events", len(result.Base.Events), "bits", len(result.BinaryStr))

			printSection(os.Stdout, "entropy", result.CleanStr)
			printSection(os.Stdout, "base", fmt.Sprintf("%s: %d events, %d bits (%.3f bits per event)",
				result.Base.Tag, len(result.Base.Events), len(result.BinaryStr), result.Base.BitsPerEvent))
			printSection(os.Stdout, "suggested length", fmt.Sprintf("%d words", result.WordCountHint()))
			if showBits {
				printSection(os.Stdout, "bits", result.BinaryStr)
			}
			return nil
		},
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a phrase from the system random source",
		Example: `  seedforge generate
  seedforge generate --words 24
  seedforge generate --strength 160 --language ja`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			bits := strength
			if generateWords != 0 {
				if generateWords%3 != 0 {
					return fmt.Errorf("%w: %d", seedforge.ErrInvalidWordCount, generateWords)
				}
				bits = generateWords / 3 * 32 //nolint:mnd
			}
			phrase, err := codec.Generate(bits)
			if err != nil {
				return err
			}
			logging.Debug("phrase generated", "bits", bits, "language", codec.Language())
			fmt.Println(phrase)
			return nil
		},
	}

	checkCmd = &cobra.Command{
		Use:   "check [phrase]",
		Short: "Validate a phrase checksum and show its entropy",
		Args:  cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			phrase, err := readInput(args)
			if err != nil {
				return err
			}
			if !codec.Check(phrase) {
				return seedforge.ErrInvalidMnemonic
			}

			entropy, _ := codec.ToRawEntropyHex(phrase)
			indices, _ := codec.WordIndices(phrase)
			printSection(os.Stdout, "checksum", "valid")
			printSection(os.Stdout, "entropy", entropy)
			printSection(os.Stdout, "word indices", joinInts(indices))
			return nil
		},
	}

	seedCmd = &cobra.Command{
		Use:   "seed [phrase]",
		Short: "Derive the 64-byte BIP39 seed of a phrase",
		Args:  cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			phrase, err := readInput(args)
			if err != nil {
				return err
			}
			if !codec.Check(phrase) {
				logging.Warn("phrase checksum is invalid, deriving seed anyway")
			}
			pass, err := resolvePassphrase()
			if err != nil {
				return err
			}
			fmt.Println(codec.ToSeed(phrase, pass))
			return nil
		},
	}

	fromEntropyCmd = &cobra.Command{
		Use:   "from-entropy [entropy]",
		Short: "Build a phrase from typed-in entropy",
		Long: `Build a phrase from typed-in entropy.

With a word count the entropy is hashed with SHA-256 and truncated to the
requested length. A count shorter than the detected entropy is rejected.
With --words raw the detected bits are used as they are.

Without --words the length is the shortest one that keeps all detected
entropy. Input longer than 256 bits does not fit 24 words and is used raw,
giving a phrase of more than 24 words.`,
		Example: `  seedforge from-entropy 6243512345123451234512345123451234512345123451234512
  seedforge from-entropy --words 24 "AH 2C KS 9D ..."
  seedforge from-entropy --words raw 0123456789abcdef0123456789abcdef`,
		Args: cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			raw, err := readInput(args)
			if err != nil {
				return err
			}
			forced, err := seedforge.ParseBaseTag(baseName)
			if err != nil {
				return err
			}

			source := seedforge.FromString(raw, forced)
			words := source.DefaultWordCount()
			if wordsName == "" && words == seedforge.RawWords {
				logging.Warn("entropy exceeds 24 words, using it raw", "bits", len(source.BinaryStr))
			}
			if wordsName != "" {
				words, err = seedforge.ParseWordCount(wordsName)
				if err != nil {
					return err
				}
			}

			result, err := codec.FromEntropy(raw, forced, words)
			if err != nil {
				return err
			}
			logging.Debug("phrase built from entropy", "base", result.Source.Base.Tag, "words", words)

			printSection(os.Stdout, "entropy", result.Source.CleanStr)
			printSection(os.Stdout, fmt.Sprintf("%d word seed phrase", len(result.Indices)), result.Phrase)
			printSection(os.Stdout, "word indices", result.IndexString())
			return nil
		},
	}

	walletCmd = &cobra.Command{
		Use:   "wallet [phrase]",
		Short: "Derive addresses and keys for several coins",
		Example: `  seedforge wallet "abandon abandon ... about"
  seedforge wallet --coins BTC,ETH --index 0 --count 5 < phrase.txt
  seedforge wallet --root xpub661MyMwAqRbcF... --coins BTC`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyDerivationOverrides(cmd)

			source, err := walletSource(args)
			if err != nil {
				return err
			}

			symbols := cfg.Coins
			if cmd.Flags().Changed("coins") {
				symbols = coinSymbols
			}
			for _, symbol := range symbols {
				coin, err := cfg.Coin(symbol)
				if err != nil {
					return err
				}
				if err := printCoin(os.Stdout, source, coin); err != nil {
					return err
				}
			}
			return nil
		},
	}

	networksCmd = &cobra.Command{
		Use:   "networks",
		Short: "List network variants and coins",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			active, err := cfg.NetworkParams()
			if err != nil {
				return err
			}

			nets := table.New().Border(lipgloss.HiddenBorder()).
				Headers("", "NAME", "VARIANT", "TIER", "XPUB", "XPRV", "P2PKH", "P2SH", "WIF", "HRP")
			for _, n := range seedforge.Networks() {
				marker := ""
				if n == active {
					marker = "*"
				}
				nets.Row(marker, n.Name, string(n.Variant), string(n.Tier),
					fmt.Sprintf("%x", n.HDPublicKeyID), fmt.Sprintf("%x", n.HDPrivateKeyID),
					fmt.Sprintf("%02x", n.PubKeyHashAddrID), fmt.Sprintf("%02x", n.ScriptHashAddrID),
					fmt.Sprintf("%02x", n.WIF), n.Bech32HRP)
			}
			fmt.Println(nets.String())

			coins := table.New().Border(lipgloss.HiddenBorder()).Headers("SYMBOL", "NAME", "PATH", "NETWORK")
			for _, c := range seedforge.Coins() {
				coin, err := cfg.Coin(c.Symbol)
				if err != nil {
					return err
				}
				coins.Row(coin.Symbol, coin.Name, seedforge.PathFor(coin.Path), coin.Network().Name)
			}
			fmt.Println(coins.String())
			return nil
		},
	}

	languagesCmd = &cobra.Command{
		Use:   "languages",
		Short: "List wordlist languages",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, l := range seedforge.Languages() {
				fmt.Printf("%-8s %s\n", l, l.DisplayName())
			}
			return nil
		},
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the configuration file",
		Long: `Write the current settings to the configuration file.

Global flags are applied first, so "seedforge --tier testnet config init"
stores testnet as the default network.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite it", configPath)
			}
			if err := cfg.Save(configPath); err != nil {
				return err
			}
			logging.Info("configuration written", "path", configPath)
			fmt.Println(configPath)
			return nil
		},
	}

	manCmd = &cobra.Command{
		Use:               "man",
		Args:              cobra.NoArgs,
		Short:             "generate man pages",
		Hidden:            true,
		PersistentPreRunE: noSetup,
		RunE: func(*cobra.Command, []string) error {
			manPage, err := mcobra.NewManPage(1, rootCmd)
			if err != nil {
				//nolint: wrapcheck
				return err
			}
			manPage = manPage.WithSection("Copyright", "(C) 2025-2026 complex.\n"+
				"See LICENSE for licensing information.")
			fmt.Println(manPage.Build(roff.NewDocument()))
			return nil
		},
	}

	completionCmd = &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for seedforge.

To load completions:

Bash:
  $ source <(seedforge completion bash)

Zsh:
  $ seedforge completion zsh > "${fpath[1]}/_seedforge"

Fish:
  $ seedforge completion fish | source

PowerShell:
  PS> seedforge completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		PersistentPreRunE:     noSetup,
		RunE: func(_ *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unknown shell: %s", args[0])
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Configuration file")
	rootCmd.PersistentFlags().StringVarP(&language, "language", "l", "", "Wordlist language (code, BCP 47 tag or English name)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&tierName, "tier", "", "Network tier of the root keys and Bitcoin records (mainnet, testnet, regtest)")
	rootCmd.PersistentFlags().StringVar(&variant, "variant", "", "Network variant of the root keys and Bitcoin records (default, p2wpkh, p2wpkh-p2sh, p2wsh, p2wsh-p2sh)")

	for _, c := range []*cobra.Command{classifyCmd, fromEntropyCmd} {
		c.Flags().StringVarP(&baseName, "base", "b", "auto", "Entropy base (auto, binary, dice, base6, base10, hex, card)")
	}
	classifyCmd.Flags().BoolVar(&showBits, "bits", false, "Print the expanded bit string")

	generateCmd.Flags().IntVarP(&strength, "strength", "s", 128, "Entropy bits, a multiple of 32") //nolint:mnd
	generateCmd.Flags().IntVarP(&generateWords, "words", "w", 0, "Word count; overrides --strength")

	fromEntropyCmd.Flags().StringVarP(&wordsName, "words", "w", "", "Word count (3-24, multiple of 3) or raw; defaults to the detected entropy, raw above 256 bits")

	for _, c := range []*cobra.Command{seedCmd, walletCmd} {
		c.Flags().StringVar(&passphrase, "passphrase", "", "BIP39 passphrase")
		c.Flags().BoolVar(&askPass, "ask-passphrase", false, "Prompt for the BIP39 passphrase")
	}
	walletCmd.Flags().StringSliceVarP(&coinSymbols, "coins", "c", nil, "Coins to derive (BTC, tBTC, rBTC, BCH, tBCH, ETH, tETH, NOSTR)")
	walletCmd.Flags().StringVar(&rootKey, "root", "", "Derive from a serialized extended key instead of a phrase")
	walletCmd.Flags().Uint32Var(&account, "account", 0, "Account index")
	walletCmd.Flags().Uint32Var(&change, "change", 0, "Change index")
	walletCmd.Flags().Uint32VarP(&index, "index", "i", 0, "First address index")
	walletCmd.Flags().Uint32VarP(&count, "count", "n", 1, "Number of addresses per coin")
	walletCmd.Flags().BoolVar(&neuter, "neuter", false, "Derive from the public-only root")
	walletCmd.Flags().BoolVar(&showRoot, "show-root", false, "Print the root extended keys for the configured network")

	configInitCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(classifyCmd, generateCmd, checkCmd, seedCmd, fromEntropyCmd,
		walletCmd, networksCmd, languagesCmd, configCmd, manCmd, completionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_ = formatError(err)
		os.Exit(1)
	}
}

// setup loads the configuration, applies flag overrides and builds the
// logger and phrase codec shared by the subcommands.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("language") {
		cfg.Language = language
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("tier") {
		cfg.Network.Tier = tierName
	}
	if flags.Changed("variant") {
		cfg.Network.Variant = variant
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.SetDefault(logging.New(&logging.Config{Level: cfg.Logging.Level, Output: os.Stderr}))

	l, err := seedforge.ParseLanguage(cfg.Language)
	if err != nil {
		return err
	}
	codec, err = seedforge.NewMnemonic(l)
	return err
}

func noSetup(*cobra.Command, []string) error { return nil }

func applyDerivationOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if !flags.Changed("account") {
		account = cfg.Derivation.Account
	}
	if !flags.Changed("change") {
		change = cfg.Derivation.Change
	}
	if !flags.Changed("index") {
		index = cfg.Derivation.Index
	}
	if !flags.Changed("count") && cfg.Derivation.Count > 0 {
		count = cfg.Derivation.Count
	}
}

// readInput joins the arguments, or reads stdin when it is not a terminal.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		return "", errors.New("no input: pass it as arguments or pipe it on stdin")
	}
	bts, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("could not read stdin: %w", err)
	}
	return strings.TrimSpace(string(bts)), nil
}

func resolvePassphrase() (string, error) {
	if !askPass {
		return passphrase, nil
	}
	defer fmt.Fprintf(os.Stderr, "\n")
	pass, err := readPassword("Enter the BIP39 passphrase: ")
	if err != nil {
		return "", err
	}
	return string(pass), nil
}

// walletSource returns a function building the wallet of one network,
// either from the phrase seed or from the extended key given with --root.
func walletSource(args []string) (func(*seedforge.NetworkParams) (*seedforge.HDWallet, error), error) {
	var (
		seed []byte
		root *seedforge.KeyNode
	)
	if rootKey != "" {
		node, err := seedforge.ParseKeyNode(rootKey)
		if err != nil {
			return nil, err
		}
		root = node
	} else {
		phrase, err := readInput(args)
		if err != nil {
			return nil, err
		}
		if !codec.Check(phrase) {
			return nil, seedforge.ErrInvalidMnemonic
		}
		pass, err := resolvePassphrase()
		if err != nil {
			return nil, err
		}
		seed = codec.SeedBytes(phrase, pass)
	}

	if showRoot {
		if err := printRoot(os.Stdout, seed, root); err != nil {
			return nil, err
		}
	}

	return func(net *seedforge.NetworkParams) (*seedforge.HDWallet, error) {
		node := root
		if node == nil {
			var err error
			node, err = seedforge.NewRootNode(seed, net)
			if err != nil {
				return nil, err
			}
		}
		if neuter {
			var err error
			node, err = node.Neuter()
			if err != nil {
				return nil, err
			}
		}
		return seedforge.NewHDWalletFromRoot(node, net), nil
	}, nil
}

func printRoot(w io.Writer, seed []byte, root *seedforge.KeyNode) error {
	net, err := cfg.NetworkParams()
	if err != nil {
		return err
	}
	if root == nil {
		root, err = seedforge.NewRootNode(seed, net)
		if err != nil {
			return err
		}
	}
	pub, err := root.Neuter()
	if err != nil {
		return err
	}

	lines := []string{pub.String() + " (public)"}
	if !root.IsNeutered() {
		lines = append(lines, root.String()+" (private)")
	}
	printSection(w, "root keys for "+net.Name, strings.Join(lines, "\n"))
	return nil
}

func printCoin(w io.Writer, build func(*seedforge.NetworkParams) (*seedforge.HDWallet, error), coin seedforge.Coin) error {
	coin = coin.WithAccount(account, change)
	wallet, err := build(coin.Network())
	if err != nil {
		return err
	}

	for i := uint32(0); i < count; i++ {
		record, err := wallet.BuildWalletRecord(coin.Path, index+i, coin.Format)
		if err != nil {
			return fmt.Errorf("failed to derive %s: %w", coin.Symbol, err)
		}
		logging.Debug("wallet derived", "coin", coin.Symbol, "path", record.Path)
		printRecord(w, coin, record)
	}
	return nil
}

func printRecord(w io.Writer, coin seedforge.Coin, record seedforge.WalletRecord) {
	t := table.New().Border(lipgloss.HiddenBorder()).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return labelStyle
			}
			return lipgloss.NewStyle()
		})
	t.Row("address", record.Address)
	if record.CashAddress != "" {
		t.Row("cashaddr", record.CashAddress)
	}
	if record.BitpayAddress != "" {
		t.Row("bitpay", record.BitpayAddress)
	}
	t.Row("public key", record.PublicKey)
	t.Row("private key", record.PrivateKey)

	printSection(w, fmt.Sprintf("%s %s", coin.Symbol, record.Path), t.String())
}

// printSection writes a "[label]" heading, a blank line, the body and a
// trailing blank line.
func printSection(w io.Writer, label, body string) {
	_, _ = fmt.Fprintf(w, "[%s]\n\n%s\n\n", label, body)
}

func joinInts(ints []int) string {
	out := make([]string, len(ints))
	for i, v := range ints {
		out[i] = strconv.Itoa(v)
	}
	return strings.Join(out, ", ")
}

func getWidth(maxw int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint: gosec
	if err != nil || w > maxw {
		return maxWidth
	}
	return w
}

func renderBlock(w io.Writer, s lipgloss.Style, width int, str string) {
	_, _ = io.WriteString(w, s.Width(width).Render(str))
	_, _ = io.WriteString(w, "\n")
}

// formatError prints err in a styled block when stderr is a terminal and
// plainly otherwise.
func formatError(err error) error {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		b := strings.Builder{}
		b.WriteRune('\n')
		renderBlock(&b, errorStyle, getWidth(maxWidth), err.Error())
		_, _ = fmt.Fprint(os.Stderr, b.String())
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return err
}

func completeColor(truecolor, ansi256, ansi string) string {
	//nolint: exhaustive
	switch lipgloss.ColorProfile() {
	case termenv.TrueColor:
		return truecolor
	case termenv.ANSI256:
		return ansi256
	}
	return ansi
}

func readPassword(msg string) ([]byte, error) {
	_, _ = fmt.Fprint(os.Stderr, msg)
	t, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open tty: %w", err)
	}
	defer t.Close()                                     //nolint: errcheck
	pass, err := term.ReadPassword(int(t.Input().Fd())) //nolint: gosec
	if err != nil {
		return nil, fmt.Errorf("could not read passphrase: %w", err)
	}
	return pass, nil
}
