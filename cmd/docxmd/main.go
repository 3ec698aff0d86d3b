// Command docxmd converts Word documents to Markdown, HTML or mdast JSON.
package main

func main() {
	Execute()
}
