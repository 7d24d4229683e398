package htmlpage_test

import (
	"fmt"
	"strings"
)

// workOrderPage renders a minimal work order detail page.
func workOrderPage(canonical, vendor, location string, extra ...string) string {
	var b strings.Builder
	b.WriteString("<html>\n<head>\n<title>Service Details - Work Order</title>\n")
	fmt.Fprintf(&b, "<link rel=\"canonical\" href=%q>\n", canonical)
	b.WriteString("</head>\n<body>\n<h2>Service Details</h2>\n")
	fmt.Fprintf(&b, "<div class=\"vendor\">\n<span>Vendor</span>\n<span>%s</span>\n</div>\n", vendor)
	if location != "" {
		fmt.Fprintf(&b, "<dl>\n<dt>Yard Location</dt>\n<dd>%s</dd>\n</dl>\n", location)
	}
	for _, line := range extra {
		fmt.Fprintf(&b, "<p>%s</p>\n", line)
	}
	b.WriteString("<script>\nvar tracking = 1;\n</script>\n</body>\n</html>\n")
	return b.String()
}

// singleLinePage renders an unassigned work order with no line breaks, the
// way minified pages are served.
func singleLinePage(updated string) string {
	return `<html><head><title>Work Order</title></head><body><span>Unassigned</span>` +
		`<dl><dt>Yard Location</dt><dd>MCO3 - X1</dd></dl><p>Updated ` + updated + `</p></body></html>`
}

const selectorDetail = `<html>
<head><title>Work Order</title></head>
<body>
<span>Unassigned</span>
<div class="css-86vfqe">MCO3 - X1</div>
</body>
</html>`

const serviceDetailsClass = `<html>
<head><title>Work Order</title></head>
<body>
<section class="sc-ServiceDetailsPanel">
<span>Unassigned</span>
</section>
</body>
</html>`

const servicePathPage = `<html>
<head><title>Work Order</title>
<link rel="canonical" href="https://aap.example.com/service/42"></head>
<body><span>Unassigned</span></body>
</html>`

const detailsPathPage = `<html>
<head><title>Work Order</title>
<meta property="og:url" content="https://aap.example.com/wo/details/42"></head>
<body><span>Unassigned</span></body>
</html>`

const dataAttributePage = `<html>
<head><title>Service Details</title></head>
<body>
<span>Unassigned</span>
<div data-site-code=" STL5 ">STL5 - Dock 4</div>
<dl><dt>Yard Location</dt><dd>RDU1 - PS552</dd></dl>
</body>
</html>`

const selectorPage = `<html>
<head><title>Equipment Overview</title></head>
<body>
<div class="css-86vfqe">Equipment</div>
<div class="css-86vfqe">  RDU1 - PS552   (ParkingSlip) </div>
</body>
</html>`

const noLocationPage = `<html>
<head><title>Service Details</title></head>
<body>
<span>Unassigned</span>
<div class="css-86vfqe">Loading...</div>
</body>
</html>`
