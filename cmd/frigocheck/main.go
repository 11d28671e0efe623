// Command frigocheck is a thin CLI over the FrigoCheck client SDK:
// authenticate, inspect the shopping list and stock, and move items
// between them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	frigocheck "github.com/frigocheck/go-frigocheck"
	"github.com/frigocheck/go-frigocheck/catalog"
	"github.com/frigocheck/go-frigocheck/client"
	"github.com/frigocheck/go-frigocheck/credentials"
	"github.com/frigocheck/go-frigocheck/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	manager *frigocheck.SessionManager
	api     *client.Client
}

func run(args []string) error {
	flags := flag.NewFlagSet("frigocheck", flag.ExitOnError)
	configPath := flags.String("config", "frigocheck.toml", "path to the TOML config file")
	query := flags.String("q", "", "substring filter for list commands")
	typeID := flags.Int("type", 0, "type id filter (0 = all)")
	genreID := flags.Int("genre", 0, "genre id filter (0 = all)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	// Optional; a missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := frigocheck.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	log, err := logger.NewDevelopment()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := credentials.Open(cfg.GetCredentialsDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()

	store := credentials.NewBunStore(db, credentials.WithBunLogger(log))
	if err := store.Init(ctx); err != nil {
		return err
	}

	api := client.New(cfg.GetBaseURL(), store,
		client.WithLogger(log),
		client.WithTimeout(time.Duration(cfg.GetHTTPTimeout())*time.Second),
	)
	manager := frigocheck.NewSessionManager(store, api, frigocheck.WithLogger(log))

	a := &app{manager: manager, api: api}
	filter := catalog.Filter{Query: *query, TypeID: *typeID, GenreID: *genreID}

	rest := flags.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: frigocheck [flags] <login|register|logout|whoami|shopping|stock> ...")
	}

	switch rest[0] {
	case "login":
		if len(rest) != 3 {
			return fmt.Errorf("usage: frigocheck login <email> <password>")
		}
		return a.login(ctx, rest[1], rest[2])

	case "register":
		if len(rest) != 6 {
			return fmt.Errorf("usage: frigocheck register <firstname> <lastname> <email> <password> <birth-day>")
		}
		return a.manager.Register(ctx, frigocheck.RegisterRequest{
			Firstname: rest[1],
			Lastname:  rest[2],
			Email:     rest[3],
			Password:  rest[4],
			BirthDay:  rest[5],
		})

	case "logout":
		a.manager.Logout(ctx)
		fmt.Println("logged out")
		return nil

	case "whoami":
		return a.whoami(ctx)

	case "shopping":
		return a.shopping(ctx, rest[1:], filter)

	case "stock":
		return a.stock(ctx, rest[1:], filter)

	default:
		return fmt.Errorf("unknown command %q", rest[0])
	}
}

func (a *app) login(ctx context.Context, email, password string) error {
	if err := a.manager.Login(ctx, email, password); err != nil {
		return err
	}
	identity := a.manager.Identity()
	fmt.Printf("logged in as %s %s <%s>\n", identity.Firstname, identity.Lastname, identity.Email)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	state, err := a.manager.Resolve(ctx)
	if err != nil {
		return err
	}
	if !state.IsAuthenticated() {
		fmt.Println("not authenticated")
		return nil
	}
	fmt.Printf("%s %s <%s> (id %s)\n",
		state.Identity.Firstname, state.Identity.Lastname, state.Identity.Email, state.UserID)
	return nil
}

func (a *app) requireSession(ctx context.Context) (frigocheck.SessionState, error) {
	state, err := a.manager.Resolve(ctx)
	if err != nil {
		return state, err
	}
	if !state.IsAuthenticated() {
		return state, fmt.Errorf("not authenticated, run: frigocheck login <email> <password>")
	}
	return state, nil
}

func (a *app) shopping(ctx context.Context, args []string, filter catalog.Filter) error {
	state, err := a.requireSession(ctx)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		items, err := a.api.ShoppingList(ctx, state.UserID.String())
		if err != nil {
			return err
		}
		printItems(filter.Apply(items))
		return nil

	case "add":
		if len(args) != 5 {
			return fmt.Errorf("usage: frigocheck shopping add <designation> <type-id> <genre-id> <quantity>")
		}
		return a.addItem(ctx, state, args[1:])

	case "validate":
		id, err := parseID(args, "frigocheck shopping validate <id>")
		if err != nil {
			return err
		}
		return a.api.ValidateItem(ctx, id)

	case "rm":
		id, err := parseID(args, "frigocheck shopping rm <id>")
		if err != nil {
			return err
		}
		return a.api.DeleteShoppingItem(ctx, id)

	default:
		return fmt.Errorf("unknown shopping command %q", args[0])
	}
}

func (a *app) addItem(ctx context.Context, state frigocheck.SessionState, args []string) error {
	typeID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid type id %q", args[1])
	}
	genreID, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid genre id %q", args[2])
	}
	quantity, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[3])
	}
	userID, err := strconv.ParseInt(state.UserID.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("user id %q is not numeric", state.UserID)
	}

	addErr := a.api.AddItem(ctx, client.NewItem{
		Designation: args[0],
		UserID:      userID,
		TypeID:      typeID,
		GenreID:     genreID,
		Quantity:    quantity,
	})

	var conflict *client.ProductExistsError
	if errors.As(addErr, &conflict) {
		fmt.Printf("%s (current quantity %d); update with: frigocheck stock update %d <quantity>\n",
			conflict.Error(), conflict.CurrentQuantity, conflict.ProductID)
		return nil
	}
	return addErr
}

func (a *app) stock(ctx context.Context, args []string, filter catalog.Filter) error {
	state, err := a.requireSession(ctx)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		items, err := a.api.StockItems(ctx, state.UserID.String())
		if err != nil {
			return err
		}
		for label, group := range catalog.GroupByType(filter.Apply(items)) {
			fmt.Printf("-- %s --\n", label)
			printItems(group)
		}
		return nil

	case "update":
		if len(args) != 3 {
			return fmt.Errorf("usage: frigocheck stock update <id> <quantity>")
		}
		return a.updateQuantity(ctx, state, args[1], args[2])

	case "rm":
		id, err := parseID(args, "frigocheck stock rm <id>")
		if err != nil {
			return err
		}
		return a.api.DeleteProduct(ctx, id)

	default:
		return fmt.Errorf("unknown stock command %q", args[0])
	}
}

// updateQuantity fetches the current entry first so the PUT carries
// the full item, not just the new quantity.
func (a *app) updateQuantity(ctx context.Context, state frigocheck.SessionState, rawID, rawQuantity string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", rawID)
	}
	quantity, err := strconv.Atoi(rawQuantity)
	if err != nil {
		return fmt.Errorf("invalid quantity %q", rawQuantity)
	}

	items, err := a.api.StockItems(ctx, state.UserID.String())
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ID == id {
			item.Quantity = quantity
			return a.api.UpdateProduct(ctx, item)
		}
	}
	return fmt.Errorf("no stock entry with id %d", id)
}

func printItems(items []client.Item) {
	if len(items) == 0 {
		fmt.Println("(empty)")
		return
	}
	for _, item := range items {
		fmt.Printf("%5d  %-30s  %-10s  %-18s  x%d\n",
			item.ID, item.Designation,
			catalog.TypeLabel(item.TypeID), catalog.GenreLabel(item.GenreID),
			item.Quantity)
	}
}

func parseID(args []string, usage string) (int64, error) {
	if len(args) != 2 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[1])
	}
	return id, nil
}
