package main

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/burn-ballot/auth"
	"github.com/danielhkuo/burn-ballot/campaign"
	"github.com/danielhkuo/burn-ballot/cliparse"
	"github.com/danielhkuo/burn-ballot/db"
	"github.com/danielhkuo/burn-ballot/derive"
	"github.com/danielhkuo/burn-ballot/engine"
	"github.com/danielhkuo/burn-ballot/token"
)

// Flags shared by the commands that open the database
var (
	flagDatabaseURL    string
	flagDatabaseType   string
	flagProgramID      string
	flagTokenProgramID string
)

func init() {
	for _, cmd := range []*cobra.Command{inspectCmd, createMintCmd, mintToCmd} {
		cmd.Flags().StringVarP(&flagDatabaseURL, "database-url", "d", "", "Database URL (or DATABASE_URL)")
		cmd.Flags().StringVarP(&flagDatabaseType, "database-type", "t", "", "Database type (or DATABASE_TYPE)")
		cmd.Flags().StringVar(&flagProgramID, "program-id", "", "Campaign program address (or PROGRAM_ID)")
		cmd.Flags().StringVar(&flagTokenProgramID, "token-program-id", "", "Token program address (or TOKEN_PROGRAM_ID)")
	}

	deriveCmd.Flags().StringVar(&flagProgramID, "program-id", "", "Campaign program address (or PROGRAM_ID)")
	deriveCmd.Flags().String("creator", "", "Creator address")
	deriveCmd.Flags().String("title", "", "Campaign title")
	deriveCmd.MarkFlagRequired("creator")
	deriveCmd.MarkFlagRequired("title")

	inspectCmd.Flags().Bool("raw", false, "Also print the encoded record")

	for _, cmd := range []*cobra.Command{createMintCmd, mintToCmd} {
		cmd.Flags().String("authority-key", "", "Hex private key of the mint authority (or MINT_AUTHORITY_KEY)")
	}
	createMintCmd.Flags().Uint8("decimals", 0, "Token decimals")
	mintToCmd.Flags().String("mint", "", "Mint address")
	mintToCmd.Flags().String("owner", "", "Recipient address")
	mintToCmd.Flags().Uint64("amount", 1, "Tokens to credit")
	mintToCmd.MarkFlagRequired("mint")
	mintToCmd.MarkFlagRequired("owner")

	tokenCmd.AddCommand(createMintCmd, mintToCmd)
	rootCmd.AddCommand(keygenCmd, deriveCmd, inspectCmd, tokenCmd)
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a signing key and print it with its address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := auth.GenerateKey()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "address: %s\nkey:     %s\n", auth.Address(key).Hex(), auth.EncodePrivateKey(key))
		return nil
	},
}

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Print the campaign address for a creator and title",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		programID, err := envAddress(flagProgramID, "PROGRAM_ID")
		if err != nil {
			return err
		}
		creatorFlag, _ := cmd.Flags().GetString("creator")
		creator, err := auth.ParseAddress(creatorFlag)
		if err != nil {
			return fmt.Errorf("invalid creator: %w", err)
		}
		title, _ := cmd.Flags().GetString("title")

		addr, err := derive.CampaignAddress(programID, creator, title)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), addr.Hex())
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [campaign-address]",
	Short: "Print one stored campaign, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, closeDB, err := openProgram()
		if err != nil {
			return err
		}
		defer closeDB()

		raw, _ := cmd.Flags().GetBool("raw")
		now := program.Now()

		if len(args) == 1 {
			addr, err := auth.ParseAddress(args[0])
			if err != nil {
				return fmt.Errorf("invalid campaign address: %w", err)
			}
			c, err := program.Campaign(cmd.Context(), addr)
			if err != nil {
				return err
			}
			return printCampaign(cmd, c, now, raw)
		}

		list, err := program.ListCampaigns(cmd.Context(), common.Address{})
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no campaigns")
			return nil
		}
		for i, c := range list {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			if err := printCampaign(cmd, c, now, raw); err != nil {
				return err
			}
		}
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage eligibility tokens",
}

var createMintCmd = &cobra.Command{
	Use:   "create-mint",
	Short: "Create an eligibility token mint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityKey(cmd)
		if err != nil {
			return err
		}
		decimals, _ := cmd.Flags().GetUint8("decimals")

		program, closeDB, err := openProgram()
		if err != nil {
			return err
		}
		defer closeDB()

		var mint *token.Mint
		err = program.Host.Atomic(cmd.Context(), func(q db.Querier) error {
			var err error
			mint, err = ledgerOf(program).CreateMint(cmd.Context(), q, auth.Address(authority), decimals)
			return err
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), mint.Address.Hex())
		return nil
	},
}

var mintToCmd = &cobra.Command{
	Use:   "mint-to",
	Short: "Credit eligibility tokens to an owner",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		authority, err := authorityKey(cmd)
		if err != nil {
			return err
		}
		mintFlag, _ := cmd.Flags().GetString("mint")
		mint, err := auth.ParseAddress(mintFlag)
		if err != nil {
			return fmt.Errorf("invalid mint: %w", err)
		}
		ownerFlag, _ := cmd.Flags().GetString("owner")
		owner, err := auth.ParseAddress(ownerFlag)
		if err != nil {
			return fmt.Errorf("invalid owner: %w", err)
		}
		amount, _ := cmd.Flags().GetUint64("amount")

		program, closeDB, err := openProgram()
		if err != nil {
			return err
		}
		defer closeDB()

		var acct *token.Account
		err = program.Host.Atomic(cmd.Context(), func(q db.Querier) error {
			var err error
			acct, err = ledgerOf(program).MintTo(cmd.Context(), q, mint, owner, auth.Address(authority), amount)
			return err
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "holding %s balance %s\n", acct.Address.Hex(), humanize.Comma(int64(acct.Amount)))
		return nil
	},
}

// openProgram builds the config from the shared flags with the same
// environment fallbacks the server uses
func openProgram() (*engine.Program, func(), error) {
	var args []string
	for _, f := range []struct{ name, value string }{
		{"-d", flagDatabaseURL},
		{"-t", flagDatabaseType},
		{"-program-id", flagProgramID},
		{"-token-program-id", flagTokenProgramID},
	} {
		if f.value != "" {
			args = append(args, f.name, f.value)
		}
	}

	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		return nil, nil, err
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, nil, err
	}

	program := engine.NewProgram(conn, cfg.DatabaseType, cfg.ProgramID, cfg.TokenProgramID, engine.SystemClock{})
	return program, func() { conn.Close() }, nil
}

func ledgerOf(program *engine.Program) *token.Ledger {
	return program.Tokens.(*token.Ledger)
}

func authorityKey(cmd *cobra.Command) (*ecdsa.PrivateKey, error) {
	s, _ := cmd.Flags().GetString("authority-key")
	if s == "" {
		s = os.Getenv("MINT_AUTHORITY_KEY")
	}
	if s == "" {
		return nil, fmt.Errorf("--authority-key or MINT_AUTHORITY_KEY required")
	}
	return auth.ParsePrivateKey(s)
}

func envAddress(value, env string) (common.Address, error) {
	if value == "" {
		value = os.Getenv(env)
	}
	if value == "" {
		return common.Address{}, fmt.Errorf("%s required", env)
	}
	addr, err := auth.ParseAddress(value)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid %s: %w", env, err)
	}
	return addr, nil
}

func printCampaign(cmd *cobra.Command, c *campaign.Campaign, now int64, raw bool) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	start := time.Unix(c.StartTime, 0)
	end := time.Unix(c.EndTime, 0)

	fmt.Fprintf(w, "Campaign\t%s\n", c.Address.Hex())
	fmt.Fprintf(w, "Title\t%s\n", c.Title)
	fmt.Fprintf(w, "Creator\t%s\n", c.Creator.Hex())
	fmt.Fprintf(w, "Mint\t%s\n", c.Mint.Hex())
	fmt.Fprintf(w, "Starts\t%s (%s)\n", start.UTC().Format(time.RFC3339), humanize.Time(start))
	fmt.Fprintf(w, "Ends\t%s (%s)\n", end.UTC().Format(time.RFC3339), humanize.Time(end))
	fmt.Fprintf(w, "Status\t%s\n", c.Status(now))
	fmt.Fprintf(w, "Votes\t%s\n", humanize.Comma(int64(c.TotalVotes)))
	for _, res := range c.Results() {
		fmt.Fprintf(w, "  [%d] %s\t%s\t%s%%\n",
			res.Index, res.Label, humanize.Comma(int64(res.Votes)),
			strconv.FormatFloat(res.Share*100, 'f', 1, 64))
	}

	if raw {
		data, err := campaign.Encode(c)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Record\t%s\n", humanize.Bytes(uint64(len(data))))
		fmt.Fprintf(w, "Data\t%s\n", hexutil.Encode(data))
	}

	return w.Flush()
}
