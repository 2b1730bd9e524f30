package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pantrify/internal/config"
	"pantrify/internal/domain"
	"pantrify/internal/port"
)

const defaultBaseURL = "https://api.spoonacular.com"

// Client implements port.RecipeProvider against the Spoonacular REST API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a Spoonacular client from the recipes config.
func NewClient(cfg *config.RecipesConfig) *Client {
	return newClient(cfg, cfg.BaseURL)
}

// NewClientWithBaseURL creates a client pointing at a custom base URL (for testing).
func NewClientWithBaseURL(cfg *config.RecipesConfig, baseURL string) *Client {
	return newClient(cfg, baseURL)
}

func newClient(cfg *config.RecipesConfig, baseURL string) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type ingredientJSON struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Original string  `json:"original"`
	Image    string  `json:"image"`
}

func (i ingredientJSON) toPort() port.RecipeIngredient {
	return port.RecipeIngredient{
		ID:       i.ID,
		Name:     i.Name,
		Amount:   i.Amount,
		Unit:     i.Unit,
		Original: i.Original,
		Image:    i.Image,
	}
}

func toPortIngredients(in []ingredientJSON) []port.RecipeIngredient {
	out := make([]port.RecipeIngredient, 0, len(in))
	for _, i := range in {
		out = append(out, i.toPort())
	}
	return out
}

type findByIngredientsJSON struct {
	ID                    int              `json:"id"`
	Title                 string           `json:"title"`
	Image                 string           `json:"image"`
	UsedIngredientCount   int              `json:"usedIngredientCount"`
	MissedIngredientCount int              `json:"missedIngredientCount"`
	UsedIngredients       []ingredientJSON `json:"usedIngredients"`
	MissedIngredients     []ingredientJSON `json:"missedIngredients"`
	UnusedIngredients     []ingredientJSON `json:"unusedIngredients"`
	Likes                 int              `json:"likes"`
}

type informationJSON struct {
	ID                   int              `json:"id"`
	Title                string           `json:"title"`
	Image                string           `json:"image"`
	ReadyInMinutes       int              `json:"readyInMinutes"`
	Servings             int              `json:"servings"`
	SourceURL            string           `json:"sourceUrl"`
	SpoonacularSourceURL string           `json:"spoonacularSourceUrl"`
	Summary              string           `json:"summary"`
	Instructions         string           `json:"instructions"`
	Vegetarian           bool             `json:"vegetarian"`
	Vegan                bool             `json:"vegan"`
	GlutenFree           bool             `json:"glutenFree"`
	DairyFree            bool             `json:"dairyFree"`
	ExtendedIngredients  []ingredientJSON `json:"extendedIngredients"`
	AnalyzedInstructions []struct {
		Steps []struct {
			Number int    `json:"number"`
			Step   string `json:"step"`
		} `json:"steps"`
	} `json:"analyzedInstructions"`
	Nutrition *struct {
		Nutrients []struct {
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
			Unit   string  `json:"unit"`
		} `json:"nutrients"`
	} `json:"nutrition"`
}

// FindByIngredients returns recipes that maximize use of the given ingredients.
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string, number int) ([]port.RecipeMatch, error) {
	q := url.Values{}
	q.Set("ingredients", strings.Join(ingredients, ","))
	q.Set("number", strconv.Itoa(number))
	q.Set("ranking", "1")
	q.Set("ignorePantry", "true")

	var raw []findByIngredientsJSON
	if err := c.get(ctx, "/recipes/findByIngredients", q, &raw); err != nil {
		return nil, err
	}

	out := make([]port.RecipeMatch, 0, len(raw))
	for _, r := range raw {
		out = append(out, port.RecipeMatch{
			ID:                    r.ID,
			Title:                 r.Title,
			Image:                 r.Image,
			UsedIngredientCount:   r.UsedIngredientCount,
			MissedIngredientCount: r.MissedIngredientCount,
			UsedIngredients:       toPortIngredients(r.UsedIngredients),
			MissedIngredients:     toPortIngredients(r.MissedIngredients),
			UnusedIngredients:     toPortIngredients(r.UnusedIngredients),
			Likes:                 r.Likes,
		})
	}
	return out, nil
}

// GetRecipe returns full recipe information including nutrition.
func (c *Client) GetRecipe(ctx context.Context, id int) (*port.RecipeDetail, error) {
	q := url.Values{}
	q.Set("includeNutrition", "true")

	var raw informationJSON
	if err := c.get(ctx, fmt.Sprintf("/recipes/%d/information", id), q, &raw); err != nil {
		return nil, err
	}

	detail := &port.RecipeDetail{
		ID:             raw.ID,
		Title:          raw.Title,
		Image:          raw.Image,
		ReadyInMinutes: raw.ReadyInMinutes,
		Servings:       raw.Servings,
		SourceURL:      raw.SourceURL,
		ProviderURL:    raw.SpoonacularSourceURL,
		Summary:        raw.Summary,
		Instructions:   raw.Instructions,
		Steps:          []port.RecipeStep{},
		Ingredients:    toPortIngredients(raw.ExtendedIngredients),
		Nutrients:      []port.Nutrient{},
		Vegetarian:     raw.Vegetarian,
		Vegan:          raw.Vegan,
		GlutenFree:     raw.GlutenFree,
		DairyFree:      raw.DairyFree,
	}
	for _, block := range raw.AnalyzedInstructions {
		for _, s := range block.Steps {
			detail.Steps = append(detail.Steps, port.RecipeStep{Number: s.Number, Step: s.Step})
		}
	}
	if raw.Nutrition != nil {
		for _, n := range raw.Nutrition.Nutrients {
			detail.Nutrients = append(detail.Nutrients, port.Nutrient{Name: n.Name, Amount: n.Amount, Unit: n.Unit})
		}
	}
	return detail, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dst interface{}) error {
	q.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// The request URL carries the API key; drop it from the error.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("calling spoonacular API %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("spoonacular API error (status %d): %s", resp.StatusCode, truncate(string(body), 300))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
