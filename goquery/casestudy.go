package goquery

import (
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/folioworks/folio"
	"golang.org/x/net/html"
)

// Section labels used by portfolio case-study templates.
var (
	overviewRe = regexp.MustCompile(`(?i)project overview|overview`)
	timelineRe = regexp.MustCompile(`(?i)project timeline|timeline`)
	roleRe     = regexp.MustCompile(`(?i)my role|role`)
	goalsRe    = regexp.MustCompile(`(?i)goals?`)
	researchRe = regexp.MustCompile(`(?i)data analysis|user research|research`)
	findingsRe = regexp.MustCompile(`(?i)findings`)
)

// ExtractCaseStudy pulls the structured text of a case-study page.
//
// Each field is located by its section label: the first text node
// matching the label, then the first element of the expected kind that
// follows the label's element in document order. Every field is best
// effort and missing sections leave the zero value.
func ExtractCaseStudy(doc *goquery.Document) *folio.CaseStudy {
	cs := &folio.CaseStudy{}

	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		cs.Title = cleanText(h1.Text())
		cs.Subtitle = cleanText(h1.NextAllFiltered("h2, h3").First().Text())
	}

	root := searchRoot(doc)
	if root == nil {
		return cs
	}

	cs.Description = textAfterLabel(root, overviewRe, "p", "div")
	cs.Timeline = textAfterLabel(root, timelineRe, "p", "div", "span")
	cs.Role = textAfterLabel(root, roleRe, "p", "div")

	if label := labelElement(root, goalsRe); label != nil {
		cs.Goals = listItems(findNext(label, "ul", "ol"))
	}

	if label := labelElement(root, researchRe); label != nil {
		if p := findNext(label, "p"); p != nil {
			cs.ResearchMethod = nodeText(p)
		}
		if findings := labelElement(label, findingsRe); findings != nil {
			cs.Findings = listItems(findNext(findings, "ul", "ol"))
		}
	}

	return cs
}

// searchRoot limits label lookups to the body so the document title
// cannot shadow a section heading.
func searchRoot(doc *goquery.Document) *html.Node {
	if body := doc.Find("body"); body.Length() > 0 {
		return body.Get(0)
	}
	if len(doc.Nodes) == 0 {
		return nil
	}
	return doc.Nodes[0]
}

func textAfterLabel(root *html.Node, re *regexp.Regexp, tags ...string) string {
	label := labelElement(root, re)
	if label == nil {
		return ""
	}
	if n := findNext(label, tags...); n != nil {
		return nodeText(n)
	}
	return ""
}

// labelElement returns the element holding the first text node under
// root that matches re.
func labelElement(root *html.Node, re *regexp.Regexp) *html.Node {
	var found *html.Node
	walkTextNodes(root, func(n *html.Node) {
		if found == nil && re.MatchString(n.Data) {
			found = n.Parent
		}
	})
	return found
}

// findNext returns the first element after n in document order whose
// tag is one of tags. Descendants of n count as following it.
func findNext(n *html.Node, tags ...string) *html.Node {
	for cur := nextNode(n); cur != nil; cur = nextNode(cur) {
		if cur.Type == html.ElementNode && slices.Contains(tags, cur.Data) {
			return cur
		}
	}
	return nil
}

// nextNode steps through the tree in document order.
func nextNode(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

func listItems(list *html.Node) []string {
	if list == nil {
		return nil
	}
	var items []string
	selectionOf(list).Find("li").Each(func(_ int, li *goquery.Selection) {
		if text := cleanText(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	return items
}

func nodeText(n *html.Node) string {
	return cleanText(selectionOf(n).Text())
}

// cleanText collapses whitespace runs and trims the result.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
