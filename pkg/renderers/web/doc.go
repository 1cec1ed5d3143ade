// Package web serves the accident form as a server-rendered HTML page.
//
// GET renders an empty form, POST validates and submits it through a
// submission.Controller built per request, and POST {base}/api/predict
// accepts the same fields as JSON. The highway catalog and the stylesheet
// are mounted next to the page.
package web
