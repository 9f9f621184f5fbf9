// Command gamesctl lists, creates, updates and deletes Games records from the
// command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/icco/gamecrm"
	"github.com/icco/gamecrm/hubspot"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

type globalOptions struct {
	Token      string `long:"token" env:"ACCESS_TOKEN" description:"HubSpot private app access token"`
	ObjectType string `long:"object-type" env:"HUBSPOT_OBJECT_TYPE" default:"2-57074073" description:"HubSpot object type id"`
	BaseURL    string `long:"base-url" env:"HUBSPOT_BASE_URL" default:"https://api.hubapi.com" description:"HubSpot API base URL"`
}

var (
	opts globalOptions

	stdout io.Writer = os.Stdout
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "could not load .env: %v\n", err)
	}

	if _, err := newParser().Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

func newParser() *flags.Parser {
	parser := flags.NewParser(&opts, flags.Default)

	parser.AddCommand("list", "List games", "Prints the first page of Games records.", &listCommand{})
	parser.AddCommand("create", "Create a game", "Creates a Games record. HubSpot assigns the id.", &createCommand{})
	parser.AddCommand("update", "Update a game",
		"Replaces the fields of an existing record. Fields that are not given are cleared, the same as submitting the web form.",
		&updateCommand{})
	parser.AddCommand("delete", "Delete a game", "Deletes a Games record by id.", &deleteCommand{})

	return parser
}

func newClient() (*hubspot.Client, error) {
	if opts.Token == "" {
		fmt.Fprintln(os.Stderr, "warning: ACCESS_TOKEN is not set, HubSpot will reject the call")
	}
	return hubspot.New(&hubspot.Config{
		Token:      opts.Token,
		ObjectType: opts.ObjectType,
		BaseURL:    opts.BaseURL,
	})
}

type listCommand struct {
	Limit int  `short:"l" long:"limit" default:"100" description:"Maximum records to fetch (1-100)"`
	JSON  bool `long:"json" description:"Print JSON instead of a table"`
}

func (c *listCommand) Execute(args []string) error {
	crm, err := newClient()
	if err != nil {
		return err
	}

	objs, err := crm.List(context.Background(), gamecrm.ListProperties, c.Limit)
	if err != nil {
		return describe("list games", err)
	}
	games := gamecrm.GamesFromObjects(objs)

	if c.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(games)
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tGENRE\tPLATFORMS\tSTATUS\tRATING")
	for _, g := range games {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			g.ID, g.Name, g.Genre, gamecrm.JoinPlatforms(g.Platforms()), g.DevelopmentStatus, g.Rating)
	}
	return tw.Flush()
}

// gameFields are shared by create and update.
type gameFields struct {
	Name        string   `short:"n" long:"name" description:"Game name"`
	Genre       string   `long:"genre" description:"Genre"`
	ReleaseDate string   `long:"release-date" description:"Release date (YYYY-MM-DD)"`
	Platforms   []string `short:"p" long:"platform" description:"Platform, repeat the flag or pass a delimited list"`
	Rating      string   `long:"rating" description:"ESRB / PEGI rating"`
	Status      string   `long:"status" description:"Development status"`
	Price       string   `long:"price" description:"Base price"`
	Sales       string   `long:"sales" description:"Global sales / player count"`
	Developer   string   `long:"developer" description:"Lead developer / studio"`
	Engine      string   `long:"engine" description:"Game engine"`
	StoreURL    string   `long:"store-url" description:"Store URL"`
}

func (f gameFields) submission(id string) gamecrm.Submission {
	s := gamecrm.Submission{
		ExistingID:        id,
		Genre:             f.Genre,
		ReleaseDate:       f.ReleaseDate,
		Platforms:         gamecrm.NormalizePlatforms(f.Platforms),
		Rating:            f.Rating,
		DevelopmentStatus: f.Status,
		BasePrice:         f.Price,
		GlobalSales:       f.Sales,
		LeadDeveloper:     f.Developer,
		GameEngine:        f.Engine,
		StoreURL:          f.StoreURL,
	}
	if f.Name != "" {
		name := f.Name
		s.GameName = &name
	}
	return s
}

type createCommand struct {
	gameFields
}

func (c *createCommand) Execute(args []string) error {
	if c.Name == "" {
		return fmt.Errorf("--name is required")
	}
	return save(c.submission(""))
}

type updateCommand struct {
	gameFields

	Args struct {
		ID string `positional-arg-name:"id" description:"Record id"`
	} `positional-args:"yes" required:"yes"`
}

func (c *updateCommand) Execute(args []string) error {
	id := strings.TrimSpace(c.Args.ID)
	if id == "" {
		return fmt.Errorf("a record id is required")
	}
	return save(c.submission(id))
}

func save(s gamecrm.Submission) error {
	crm, err := newClient()
	if err != nil {
		return err
	}

	m := s.Classify()
	var obj *hubspot.Object
	switch m.Kind {
	case gamecrm.MutationUpdate:
		obj, err = crm.Update(context.Background(), m.ID, m.Properties)
	default:
		obj, err = crm.Create(context.Background(), m.Properties)
	}
	if err != nil {
		return describe(m.Kind.String()+" game", err)
	}

	fmt.Fprintf(stdout, "%sd %s\n", m.Kind, obj.ID)
	return nil
}

type deleteCommand struct {
	Args struct {
		ID string `positional-arg-name:"id" description:"Record id"`
	} `positional-args:"yes" required:"yes"`
}

func (c *deleteCommand) Execute(args []string) error {
	crm, err := newClient()
	if err != nil {
		return err
	}

	if err := crm.Delete(context.Background(), c.Args.ID); err != nil {
		return describe("delete game", err)
	}

	fmt.Fprintf(stdout, "deleted %s\n", c.Args.ID)
	return nil
}

func describe(what string, err error) error {
	if apiErr, ok := hubspot.AsAPIError(err); ok {
		return fmt.Errorf("could not %s: HubSpot returned %d: %s", what, apiErr.StatusCode, apiErr.Message())
	}
	return fmt.Errorf("could not %s: %w", what, err)
}
