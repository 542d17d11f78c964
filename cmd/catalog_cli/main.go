package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"catalog-admin/internal/app"
	"catalog-admin/internal/config"
	"catalog-admin/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := app.NewLogger("warn")
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	redisClient := app.NewRedisClient(ctx, cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	backend, err := app.Build(ctx, cfg, logger, redisClient)
	if err != nil {
		log.Fatal(err)
	}
	defer backend.Close()

	cli := &catalogCLI{
		in:      reader,
		out:     os.Stdout,
		auth:    backend.Auth,
		catalog: backend.Catalog,
		logger:  logger,
	}
	if err := cli.run(ctx); err != nil && err != io.EOF {
		log.Fatal(err)
	}
}

type catalogCLI struct {
	in      *bufio.Reader
	out     io.Writer
	auth    *service.AuthService
	catalog *service.CatalogService
	logger  *zap.Logger

	token string
}

func (c *catalogCLI) run(ctx context.Context) error {
	fmt.Fprintln(c.out, "===== Catalog Admin =====")
	for c.token == "" {
		if err := c.loginFlow(ctx); err != nil {
			return err
		}
	}

	for {
		fmt.Fprintln(c.out, "\n[1] List products")
		fmt.Fprintln(c.out, "[2] List categories")
		fmt.Fprintln(c.out, "[3] Add category")
		fmt.Fprintln(c.out, "[4] Add product")
		fmt.Fprintln(c.out, "[5] Logout and exit")
		choice, err := c.prompt("Select an option: ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			c.listProducts(ctx)
		case "2":
			c.listCategories(ctx)
		case "3":
			if err := c.addCategoryFlow(ctx); err != nil {
				return err
			}
		case "4":
			if err := c.addProductFlow(ctx); err != nil {
				return err
			}
		case "5":
			if err := c.auth.Logout(ctx, c.token); err != nil {
				c.logger.Debug("continuing logout after provider error", zap.Error(err))
			}
			c.token = ""
			fmt.Fprintln(c.out, service.MsgLoggedOut)
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid option.")
		}
	}
}

func (c *catalogCLI) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *catalogCLI) loginFlow(ctx context.Context) error {
	email, err := c.prompt("Email: ")
	if err != nil {
		return err
	}
	password, err := c.prompt("Password: ")
	if err != nil {
		return err
	}
	session, err := c.auth.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintln(c.out, service.MsgLoginFailed+service.UserMessage(err))
		return nil
	}
	c.token = session.AccessToken
	fmt.Fprintln(c.out, service.MsgLoginSuccess)
	return nil
}

func (c *catalogCLI) listProducts(ctx context.Context) {
	rows, err := c.catalog.ListProductRows(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "Error fetching products: %s\n", service.UserMessage(err))
		return
	}
	if len(rows) == 0 {
		fmt.Fprintln(c.out, service.MsgProductsEmpty)
		return
	}
	fmt.Fprintf(c.out, "%-6s %-30s %10s  %s\n", "ID", "Title", "Price", "Category")
	for _, r := range rows {
		fmt.Fprintf(c.out, "%-6d %-30s %10s  %s\n", r.ID, r.Title, r.Price.String(), r.CategoryName)
	}
}

func (c *catalogCLI) listCategories(ctx context.Context) {
	categories, err := c.catalog.ListCategories(ctx)
	if err != nil {
		fmt.Fprintln(c.out, service.MsgCategoriesFailed)
		return
	}
	for _, cat := range categories {
		fmt.Fprintf(c.out, "[%d] %s\n", cat.ID, cat.Name)
	}
}

func (c *catalogCLI) addCategoryFlow(ctx context.Context) error {
	name, err := c.prompt("Category name: ")
	if err != nil {
		return err
	}
	if _, err := c.catalog.SaveCategory(ctx, c.token, 0, name); err != nil {
		fmt.Fprintln(c.out, service.MsgCategorySaveFailed+service.UserMessage(err))
		return nil
	}
	fmt.Fprintln(c.out, service.MsgCategoryCreated)
	return nil
}

func (c *catalogCLI) addProductFlow(ctx context.Context) error {
	c.listCategories(ctx)
	categoryID, err := c.prompt("Category ID: ")
	if err != nil {
		return err
	}
	title, err := c.prompt("Title: ")
	if err != nil {
		return err
	}
	price, err := c.prompt("Price: ")
	if err != nil {
		return err
	}

	input := service.ProductInput{Title: title, Price: price, CategoryID: categoryID}
	if _, err := service.ParseProductInput(input); err != nil {
		fmt.Fprintln(c.out, service.UserMessage(err))
		return nil
	}
	product, err := c.catalog.SaveProduct(ctx, c.token, 0, input)
	if err != nil {
		fmt.Fprintln(c.out, service.MsgProductSaveFailed+service.UserMessage(err))
		return nil
	}
	fmt.Fprintf(c.out, "%s (ID: %s)\n", service.MsgProductAdded, strconv.FormatInt(product.ID, 10))
	return nil
}
