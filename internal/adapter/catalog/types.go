package catalog

type (
	response struct {
		Status string    `json:"status"`
		Code   int       `json:"code"`
		Total  int       `json:"total"`
		Data   []product `json:"data"`
	}

	product struct {
		ID          int            `json:"id"`
		Name        string         `json:"name"`
		Description string         `json:"description"`
		EAN         string         `json:"ean"`
		UPC         string         `json:"upc"`
		Image       string         `json:"image"`
		Images      []productImage `json:"images"`
		NetPrice    float64        `json:"net_price"`
		Taxes       float64        `json:"taxes"`
		Price       float64        `json:"price"`
		Categories  []string       `json:"categories"`
		Tags        []string       `json:"tags"`
	}

	productImage struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
	}
)
