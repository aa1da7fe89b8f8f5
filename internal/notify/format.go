package notify

import (
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/akshayam/wellness-store.git/internal/orders"
)

type itemView struct {
	Name     string
	Quantity int
	Price    string
	Total    string
}

type orderView struct {
	OrderID     string
	Date        string
	UserName    string
	UserEmail   string
	UserPhone   string
	UserAddress string
	Items       []itemView
	TotalAmount string
}

func money(cents int64) string {
	return fmt.Sprintf("₹%.2f", float64(cents)/100)
}

func newOrderView(o orders.Order) orderView {
	v := orderView{
		OrderID:     o.ID,
		Date:        o.CreatedAt.Format("January 2, 2006 at 3:04 PM"),
		UserName:    o.UserName,
		UserEmail:   o.UserEmail,
		UserPhone:   o.UserPhone,
		UserAddress: o.UserAddress,
		TotalAmount: money(o.TotalCents),
	}
	for _, it := range o.Items {
		v.Items = append(v.Items, itemView{
			Name:     it.ProductName,
			Quantity: it.Quantity,
			Price:    money(it.PriceCents),
			Total:    money(it.TotalCents),
		})
	}
	return v
}

var textTmpl = texttemplate.Must(texttemplate.New("order-text").Parse(`New Order Received - Akshayam Wellness

Order Details:
==============
Order ID: {{.OrderID}}
Date: {{.Date}}

Customer Information:
===================
Name: {{.UserName}}
Email: {{.UserEmail}}
Phone: {{.UserPhone}}
Address: {{.UserAddress}}

Order Items:
============
{{range .Items}}
Product: {{.Name}}
Quantity: {{.Quantity}}
Price: {{.Price}}
Total: {{.Total}}
{{end}}
==============
Total Amount: {{.TotalAmount}}

Please process this order as soon as possible.

Best regards,
Akshayam Wellness System
`))

var htmlTmpl = htmltemplate.Must(htmltemplate.New("order-html").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background-color: #4CAF50; color: white; padding: 20px; text-align: center; }
.content { background-color: #f9f9f9; padding: 20px; border: 1px solid #ddd; }
.order-item { background-color: white; padding: 15px; margin: 10px 0; border-left: 4px solid #4CAF50; }
.total { background-color: #4CAF50; color: white; padding: 15px; text-align: center; font-weight: bold; }
table { width: 100%; border-collapse: collapse; }
td { padding: 8px; border-bottom: 1px solid #eee; }
.label { font-weight: bold; color: #666; }
</style>
</head>
<body>
<div class="container">
  <div class="header"><h1>New Order Received</h1><p>Akshayam Wellness</p></div>
  <div class="content">
    <table>
      <tr><td class="label">Order ID:</td><td>{{.OrderID}}</td></tr>
      <tr><td class="label">Date:</td><td>{{.Date}}</td></tr>
      <tr><td class="label">Name:</td><td>{{.UserName}}</td></tr>
      <tr><td class="label">Email:</td><td>{{.UserEmail}}</td></tr>
      <tr><td class="label">Phone:</td><td>{{.UserPhone}}</td></tr>
      <tr><td class="label">Address:</td><td>{{.UserAddress}}</td></tr>
    </table>
    {{range .Items}}
    <div class="order-item">
      <strong>{{.Name}}</strong><br>
      Quantity: {{.Quantity}} x {{.Price}} = <strong>{{.Total}}</strong>
    </div>
    {{end}}
    <div class="total">Total Amount: {{.TotalAmount}}</div>
  </div>
</div>
</body>
</html>
`))

// FormatOrderEmail renders the admin notification. Pure and
// deterministic given the order snapshot.
func FormatOrderEmail(o orders.Order) (subject, text, html string) {
	v := newOrderView(o)
	subject = fmt.Sprintf("New Order #%s from %s - Akshayam Wellness", v.OrderID, v.UserName)

	var tb, hb strings.Builder
	// templates are static and the view is plain data; render cannot fail
	_ = textTmpl.Execute(&tb, v)
	_ = htmlTmpl.Execute(&hb, v)
	return subject, tb.String(), hb.String()
}
