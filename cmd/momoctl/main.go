// momoctl runs single MTN MoMo operations from the command line: sandbox
// provisioning, token exchange, payments and account lookups.
//
//	momoctl provision -callback-host example.com
//	momoctl pay -amount 100 -phone 256733123453 -report runs.csv
//	momoctl status -reference <transaction reference>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fitstack/momo-payments/config"
	"github.com/fitstack/momo-payments/internal/adapters/backend"
	"github.com/fitstack/momo-payments/internal/adapters/momo"
	"github.com/fitstack/momo-payments/internal/core/domain"
	"github.com/fitstack/momo-payments/internal/core/service"
	"github.com/fitstack/momo-payments/internal/observability"
	"github.com/joho/godotenv"
)

const usage = `usage: momoctl <command> [flags]

commands:
  provision   create a sandbox API user and its API key
  token       exchange API user credentials for an access token
  pay         send a RequestToPay
  status      check the status of a RequestToPay
  balance     check the collection account balance
  active      check whether an account holder is active

Run "momoctl <command> -h" for the flags of a command.
`

var errUsage = errors.New("invalid usage")

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "momoctl:", err)
		}
		os.Exit(1)
	}
}

// outcome is what a command prints and reports.
type outcome struct {
	Operation string
	Response  domain.Response
	Details   [][2]string
}

type command func(ctx context.Context, svc *service.PaymentService) (*outcome, error)

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return errUsage
	}
	name, rest := args[0], args[1:]

	cfg := config.Load()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)

	environment := fs.String("env", cfg.MoMo.TargetEnvironment, "target environment: sandbox or production")
	baseURL := fs.String("base-url", cfg.MoMo.BaseURL, "override the MTN API host")
	apiUserID := fs.String("api-user-id", cfg.MoMo.APIUserID, "API user id")
	apiKey := fs.String("api-key", cfg.MoMo.APIKey, "API key")
	subscriptionKey := fs.String("subscription-key", cfg.MoMo.SubscriptionKey, "Ocp-Apim-Subscription-Key")
	timeout := fs.Duration("timeout", cfg.MoMo.HTTPTimeout, "HTTP timeout")
	reportPath := fs.String("report", "", "append the result to this CSV file")
	verbose := fs.Bool("v", false, "log every HTTP call")

	cmd, err := newCommand(name, fs, cfg)
	if err != nil {
		fmt.Fprint(out, usage)
		return err
	}
	if err := fs.Parse(rest); err != nil {
		return err
	}

	env, err := domain.ParseEnvironment(*environment)
	if err != nil {
		return err
	}
	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := observability.NewLogger(level, "console")
	if err != nil {
		return err
	}
	defer logger.Sync()

	gateway := momo.NewGateway(domain.GatewayConfig{
		Credentials: domain.Credentials{
			APIUserID:       *apiUserID,
			APIKey:          *apiKey,
			SubscriptionKey: *subscriptionKey,
		},
		TargetEnvironment: env,
		CallbackHost:      cfg.MoMo.CallbackHost,
		BaseURL:           *baseURL,
	}, momo.WithTimeout(*timeout), momo.WithLogger(logger))
	svc := service.NewPaymentService(gateway, backend.NopNotifier{}, logger, cfg.MoMo.CallbackURL)

	result, err := cmd(ctx, svc)
	if err != nil {
		return err
	}

	printOutcome(out, result)
	if *reportPath != "" {
		if err := appendReport(*reportPath, time.Now(), result); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

// newCommand registers the flags of a command and returns the function running it.
func newCommand(name string, fs *flag.FlagSet, cfg *config.Config) (command, error) {
	switch name {
	case "provision":
		callbackHost := fs.String("callback-host", cfg.MoMo.CallbackHost, "providerCallbackHost of the new API user")
		return func(ctx context.Context, svc *service.PaymentService) (*outcome, error) {
			provisioned, err := svc.ProvisionSandboxUser(ctx, domain.CreateAPIUserRequest{CallbackHost: *callbackHost})
			if err != nil {
				return nil, err
			}
			res := &outcome{
				Operation: service.OpCreateAPIUser,
				Response:  provisioned.User.Response,
				Details:   [][2]string{{"api_user_id", provisioned.User.APIUserID}},
			}
			if provisioned.Key != nil {
				res.Operation = service.OpCreateAPIKey
				res.Response = provisioned.Key.Response
				res.Details = append(res.Details, [2]string{"api_key", provisioned.Key.APIKey})
			}
			return res, nil
		}, nil

	case "token":
		return func(ctx context.Context, svc *service.PaymentService) (*outcome, error) {
			res, err := svc.CreateToken(ctx, domain.CreateTokenRequest{})
			if err != nil {
				return nil, err
			}
			return &outcome{
				Operation: service.OpCreateToken,
				Response:  res.Response,
				Details: [][2]string{
					{"access_token", res.Token.Value},
					{"token_type", res.Token.TokenType},
					{"expires_in", strconv.Itoa(res.Token.ExpiresIn)},
				},
			}, nil
		}, nil

	case "pay":
		amount := fs.String("amount", "", "amount to collect")
		currency := fs.String("currency", "EUR", "currency")
		phone := fs.String("phone", "", "payer MSISDN in international format")
		externalID := fs.String("external-id", "", "merchant reference (generated when empty)")
		payerMessage := fs.String("payer-message", "", "message shown to the payer")
		payeeNote := fs.String("payee-note", "", "note for the payee")
		callbackURL := fs.String("callback-url", "", "X-Callback-Url")
		return func(ctx context.Context, svc *service.PaymentService) (*outcome, error) {
			res, err := svc.Purchase(ctx, domain.PurchaseRequest{
				Amount:       *amount,
				Currency:     *currency,
				ExternalID:   *externalID,
				PayerPhone:   *phone,
				PayerMessage: *payerMessage,
				PayeeNote:    *payeeNote,
				CallbackURL:  *callbackURL,
			})
			if err != nil {
				return nil, err
			}
			return &outcome{
				Operation: service.OpPurchase,
				Response:  res.Response,
				Details: [][2]string{
					{"transaction_reference", res.TransactionReference},
					{"external_id", res.ExternalID},
				},
			}, nil
		}, nil

	case "status":
		reference := fs.String("reference", "", "transaction reference returned by pay")
		return func(ctx context.Context, svc *service.PaymentService) (*outcome, error) {
			res, err := svc.CompletePurchase(ctx, domain.CompletePurchaseRequest{TransactionReference: *reference})
			if err != nil {
				return nil, err
			}
			return &outcome{
				Operation: service.OpCompletePurchase,
				Response:  res.Response,
				Details: [][2]string{
					{"status", string(res.Status)},
					{"transaction_reference", res.TransactionReference},
					{"amount", res.Amount},
					{"currency", res.Currency},
					{"reason", res.Reason},
				},
			}, nil
		}, nil

	case "balance", "active":
		holderType := fs.String("type", "MSISDN", "account holder id type")
		holderID := fs.String("id", "", "account holder id")
		if name == "balance" {
			return func(ctx context.Context, svc *service.PaymentService) (*outcome, error) {
				res, err := svc.CheckBalance(ctx, domain.AccountRequest{AccountHolderType: *holderType, AccountHolderID: *holderID})
				if err != nil {
					return nil, err
				}
				return &outcome{
					Operation: service.OpCheckBalance,
					Response:  res.Response,
					Details:   [][2]string{{"available_balance", res.AvailableBalance}, {"currency", res.Currency}},
				}, nil
			}, nil
		}
		return func(ctx context.Context, svc *service.PaymentService) (*outcome, error) {
			res, err := svc.CheckAccountActive(ctx, domain.AccountRequest{AccountHolderType: *holderType, AccountHolderID: *holderID})
			if err != nil {
				return nil, err
			}
			return &outcome{
				Operation: service.OpAccountActive,
				Response:  res.Response,
				Details:   [][2]string{{"active", strconv.FormatBool(res.Active)}},
			}, nil
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
}

func printOutcome(out io.Writer, res *outcome) {
	fmt.Fprintf(out, "%s: %s (%d) %s\n", res.Operation, res.Response.Outcome, res.Response.Code, res.Response.Message)
	for _, kv := range res.Details {
		if kv[1] == "" {
			continue
		}
		fmt.Fprintf(out, "  %s: %s\n", kv[0], kv[1])
	}
}
