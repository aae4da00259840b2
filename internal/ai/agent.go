package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"e-kasir/internal/catalog"
	"e-kasir/internal/database"
	"e-kasir/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Agent answers natural-language questions about the shop by calling
// the catalog and reporting services as tools.
type Agent struct {
	catalog *catalog.Catalog
	reports *database.Reports
	apiKey  string
}

func NewAgent(cat *catalog.Catalog, reports *database.Reports, apiKey string) *Agent {
	return &Agent{catalog: cat, reports: reports, apiKey: apiKey}
}

func (a *Agent) Run(ctx context.Context, userMessage string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")
	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant of a small retail store's cash register.

RULES:
1. UPDATE: If a user asks to update a product by NAME (e.g. "Update the Latte price"), do NOT ask for the ID. Instead:
   - Call 'check_inventory' to find the ID.
   - Call 'update_product_price' using that ID.

2. READ: If a user asks for PRICE, STOCK, or DETAILS of a product:
   - Call 'check_inventory' to get the full list.
   - Read the JSON to find the specific item and answer.

3. SALES: If the user asks for sales or revenue, use 'get_sales_report'.

USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the full product list. Use this to find ANY product detail: ID, name, price, stock, barcodes, or category.",
				},
				{
					Name:        "update_product_price",
					Description: "Update the price of a specific product using its ID",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"product_id": {Type: genai.TypeInteger, Description: "ID of the product"},
							"new_price":  {Type: genai.TypeNumber, Description: "New price"},
						},
						Required: []string{"product_id", "new_price"},
					},
				},
				{
					Name:        "create_product",
					Description: "Add a new product to the catalog",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name":     {Type: genai.TypeString, Description: "Name of the product"},
							"price":    {Type: genai.TypeNumber, Description: "Price of the product"},
							"category": {Type: genai.TypeString, Description: "Category (Kopi, Roti, Minuman, ...)"},
							"stock":    {Type: genai.TypeInteger, Description: "Initial stock count"},
							"barcode":  {Type: genai.TypeString, Description: "Barcode for scan lookup"},
						},
						Required: []string{"name", "price", "category", "stock"},
					},
				},
				{
					Name:        "get_sales_report",
					Description: "Get total sales revenue for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "check_inventory":
				finalResp, err := a.answerInventory(ctx, session)
				if err != nil {
					return "", err
				}
				return a.handleFollowupCalls(ctx, session, finalResp), nil
			case "update_product_price":
				return a.executeUpdatePrice(ctx, session, funcCall), nil
			case "create_product":
				return a.executeCreateProduct(ctx, session, funcCall), nil
			case "get_sales_report":
				return a.executeSalesReport(ctx, session, funcCall), nil
			}
		}
	}

	return printResponse(resp), nil
}

func (a *Agent) answerInventory(ctx context.Context, session *genai.ChatSession) (*genai.GenerateContentResponse, error) {
	products, err := a.catalog.List()
	if err != nil {
		return nil, err
	}

	type simpleProduct struct {
		ID    uint    `json:"id"`
		Name  string  `json:"name"`
		Stock int     `json:"stock"`
		Price float64 `json:"price"`
	}
	simpleList := make([]simpleProduct, 0, len(products))
	for _, p := range products {
		simpleList = append(simpleList, simpleProduct{
			ID:    p.ID,
			Name:  p.Name,
			Stock: p.Stock,
			Price: p.Price,
		})
	}

	jsonBytes, _ := json.Marshal(simpleList)

	return session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "check_inventory",
		Response: map[string]interface{}{"inventory": string(jsonBytes)},
	})
}

// handleFollowupCalls covers the find-by-name-then-update chain, where
// the model checks inventory first and edits the price second.
func (a *Agent) handleFollowupCalls(ctx context.Context, session *genai.ChatSession, resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			if funcCall.Name == "update_product_price" {
				return a.executeUpdatePrice(ctx, session, funcCall)
			}
		}
	}
	return printResponse(resp)
}

func (a *Agent) executeUpdatePrice(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	productID := uint(args["product_id"].(float64))
	newPrice := args["new_price"].(float64)

	msg := "Success"
	product, err := a.catalog.Get(productID)
	if err != nil {
		msg = "Product ID not found"
	} else {
		product.Price = newPrice
		if err := a.catalog.Upsert(product); err != nil {
			msg = "Update failed: " + err.Error()
		}
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "update_product_price",
		Response: map[string]interface{}{"status": msg, "new_price": newPrice},
	})
	return printResponse(finalResp)
}

func (a *Agent) executeCreateProduct(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args

	barcode, _ := args["barcode"].(string)
	if barcode == "" {
		barcode = fmt.Sprintf("AI-%d", time.Now().Unix())
	}

	newProd := models.Product{
		Name:     args["name"].(string),
		Price:    args["price"].(float64),
		Category: args["category"].(string),
		Stock:    int(args["stock"].(float64)),
		Barcodes: []string{barcode},
		Image:    "https://placehold.co/300x300.png",
	}

	status := "created"
	if err := a.catalog.Upsert(&newProd); err != nil {
		status = "failed: " + err.Error()
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "create_product",
		Response: map[string]interface{}{"status": status, "id": newProd.ID},
	})
	return printResponse(finalResp)
}

func (a *Agent) executeSalesReport(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	startStr := args["start_date"].(string)
	endStr := args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)
	if err1 != nil || err2 != nil {
		return "Error: Dates must be in YYYY-MM-DD format."
	}
	end = end.Add(23*time.Hour + 59*time.Minute)

	report, err := a.reports.Range(start, end)
	if err != nil {
		return "Error calculating sales."
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_sales_report",
		Response: map[string]interface{}{
			"revenue":     report.TotalRevenue,
			"sales_count": report.TotalCount,
		},
	})
	return printResponse(finalResp)
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
