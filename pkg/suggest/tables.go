package suggest

// Category labels used as section headers in the dropdown.
const (
	CategoryTags       = "HTML Tags"
	CategoryAttributes = "HTML Attributes"
	CategoryProperties = "CSS Properties"
	CategoryValues     = "CSS Values"
	CategoryKeywords   = "JavaScript Keywords"
	CategoryBuiltins   = "JavaScript Built-ins"
	CategoryVariables  = "Your Variables"
	CategoryFunctions  = "Your Functions"
)

// The tables are built by functions rather than package vars so every
// Corpus owns its own copy.

func htmlTags() []Entry {
	tag := func(name, desc, insert string) Entry {
		return Entry{Text: name, Kind: Element, Description: desc, InsertText: insert, Category: CategoryTags}
	}
	pair := func(name, desc string) Entry {
		return tag(name, desc, "<"+name+"></"+name+">")
	}
	return []Entry{
		pair("div", "Generic container element"),
		pair("span", "Inline container element"),
		pair("p", "Paragraph element"),
		pair("h1", "Main heading"),
		pair("h2", "Secondary heading"),
		pair("h3", "Tertiary heading"),
		pair("header", "Header section"),
		pair("main", "Main content area"),
		pair("footer", "Footer section"),
		pair("nav", "Navigation section"),
		pair("section", "Document section"),
		pair("article", "Article content"),
		pair("aside", "Sidebar content"),
		pair("button", "Clickable button"),
		tag("input", "Input field", `<input type="text">`),
		pair("form", "Form container"),
		pair("label", "Form label"),
		tag("img", "Image element", `<img src="" alt="">`),
		tag("a", "Anchor/link element", `<a href=""></a>`),
		pair("ul", "Unordered list"),
		pair("ol", "Ordered list"),
		pair("li", "List item"),
		pair("table", "Table element"),
		pair("tr", "Table row"),
		pair("td", "Table cell"),
		pair("th", "Table header cell"),
	}
}

func htmlAttributes() []Entry {
	attr := func(name, desc string) Entry {
		return Entry{Text: name, Kind: Attribute, Description: desc, InsertText: name + `=""`, Category: CategoryAttributes}
	}
	flag := func(name, desc string) Entry {
		return Entry{Text: name, Kind: Attribute, Description: desc, InsertText: name, Category: CategoryAttributes}
	}
	return []Entry{
		attr("class", "CSS class name"),
		attr("id", "Unique identifier"),
		attr("src", "Source URL"),
		attr("href", "Link destination"),
		attr("alt", "Alternative text"),
		attr("title", "Tooltip text"),
		attr("type", "Element type"),
		attr("value", "Element value"),
		attr("placeholder", "Placeholder text"),
		flag("disabled", "Disable element"),
		flag("required", "Required field"),
		flag("readonly", "Read-only field"),
	}
}

func cssProperties() []Entry {
	prop := func(name, desc string) Entry {
		return Entry{Text: name, Kind: StyleProperty, Description: desc, InsertText: name + ": ", Category: CategoryProperties}
	}
	return []Entry{
		prop("display", "Display type"),
		prop("position", "Positioning method"),
		prop("top", "Top position"),
		prop("right", "Right position"),
		prop("bottom", "Bottom position"),
		prop("left", "Left position"),
		prop("width", "Element width"),
		prop("height", "Element height"),
		prop("margin", "Outer spacing"),
		prop("padding", "Inner spacing"),
		prop("border", "Element border"),
		prop("background", "Background styling"),
		prop("background-color", "Background color"),
		prop("color", "Text color"),
		prop("font-size", "Text size"),
		prop("font-family", "Font family"),
		prop("font-weight", "Font weight"),
		prop("text-align", "Text alignment"),
		prop("line-height", "Line height"),
		prop("flex", "Flexbox shorthand"),
		prop("flex-direction", "Flex direction"),
		prop("justify-content", "Justify content"),
		prop("align-items", "Align items"),
		prop("grid", "CSS Grid shorthand"),
		prop("grid-template-columns", "Grid columns"),
		prop("grid-template-rows", "Grid rows"),
		prop("border-radius", "Rounded corners"),
		prop("box-shadow", "Drop shadow"),
		prop("transition", "CSS transition"),
		prop("transform", "CSS transform"),
		prop("opacity", "Element opacity"),
		prop("z-index", "Stacking order"),
		prop("overflow", "Content overflow"),
		prop("cursor", "Mouse cursor"),
	}
}

func cssValues() []Entry {
	val := func(name, desc string) Entry {
		return Entry{Text: name, Kind: StyleValue, Description: desc, InsertText: name, Category: CategoryValues}
	}
	return []Entry{
		val("block", "Block display"),
		val("inline", "Inline display"),
		val("inline-block", "Inline-block display"),
		val("flex", "Flexbox display"),
		val("grid", "Grid display"),
		val("none", "Hide element"),
		val("relative", "Relative positioning"),
		val("absolute", "Absolute positioning"),
		val("fixed", "Fixed positioning"),
		val("center", "Center alignment"),
		val("left", "Left alignment"),
		val("right", "Right alignment"),
		val("space-between", "Space between items"),
		val("space-around", "Space around items"),
		val("space-evenly", "Space evenly"),
		val("bold", "Bold font weight"),
		val("normal", "Normal font weight"),
		val("pointer", "Pointer cursor"),
		val("auto", "Auto value"),
		val("hidden", "Hidden overflow"),
		val("scroll", "Scroll overflow"),
	}
}

func jsKeywords() []Entry {
	kw := func(name, desc, insert string) Entry {
		return Entry{Text: name, Kind: Keyword, Description: desc, InsertText: insert, Category: CategoryKeywords}
	}
	return []Entry{
		kw("function", "Function declaration", "function "),
		kw("const", "Constant declaration", "const "),
		kw("let", "Variable declaration", "let "),
		kw("var", "Variable declaration (legacy)", "var "),
		kw("if", "Conditional statement", "if ()"),
		kw("else", "Else clause", "else "),
		kw("for", "For loop", "for ()"),
		kw("while", "While loop", "while ()"),
		kw("return", "Return statement", "return "),
		kw("true", "Boolean true", "true"),
		kw("false", "Boolean false", "false"),
		kw("null", "Null value", "null"),
		kw("undefined", "Undefined value", "undefined"),
		kw("try", "Try block", "try "),
		kw("catch", "Catch block", "catch "),
		kw("finally", "Finally block", "finally "),
		kw("throw", "Throw statement", "throw "),
		kw("class", "Class declaration", "class "),
		kw("extends", "Class inheritance", "extends "),
		kw("import", "Import statement", "import "),
		kw("export", "Export statement", "export "),
		kw("async", "Async function", "async "),
		kw("await", "Await expression", "await "),
	}
}

func jsBuiltins() []Entry {
	call := func(name, desc string) Entry {
		return Entry{Text: name, Kind: Callable, Description: desc, InsertText: name + "()", Category: CategoryBuiltins}
	}
	return []Entry{
		call("console.log", "Log to console"),
		call("document.getElementById", "Get element by ID"),
		call("document.querySelector", "Query selector"),
		call("document.querySelectorAll", "Query all selectors"),
		call("addEventListener", "Add event listener"),
		call("removeEventListener", "Remove event listener"),
		call("setTimeout", "Set timeout"),
		call("setInterval", "Set interval"),
		call("clearTimeout", "Clear timeout"),
		call("clearInterval", "Clear interval"),
		call("parseInt", "Parse integer"),
		call("parseFloat", "Parse float"),
		call("Math.random", "Random number"),
		call("Math.floor", "Floor function"),
		call("Math.ceil", "Ceiling function"),
		call("Math.round", "Round function"),
		call("Array.from", "Create array from"),
		call("Object.keys", "Get object keys"),
		call("Object.values", "Get object values"),
		call("JSON.parse", "Parse JSON"),
		call("JSON.stringify", "Stringify JSON"),
	}
}
