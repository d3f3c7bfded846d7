// Package markup turns a tree.Forest into markup text.
//
// Output is deterministic: one line per root, roots joined by "\n", no
// indentation. Every tag is rendered through one of a closed set of kinds
// (image, input, textarea, link, generic element); adding a tag with special
// output means adding a Kind and its case in render.
//
// Content and class values are escaped for text and attribute position:
//
//	&  -> &amp;
//	<  -> &lt;
//	>  -> &gt;
//	"  -> &quot;
//	'  -> &#39;
//
// The package also builds the standalone preview document, the page layout
// export that embeds saved components, and line diffs between two renderings.
package markup
