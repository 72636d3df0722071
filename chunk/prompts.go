package chunk

const chunkPrompt = `###TASK###
You are given one page of developer documentation in markdown, together
with its source URL and base URL. Split the page into self-contained
chunks suitable for semantic search and attach structured metadata to
each chunk.

###INSTRUCTIONS###
- Each chunk must stand on its own: keep a code example together with the
  prose that explains it.
- Never split inside a fenced code block.
- "sdk_framework" is "SDK" or "Framework" depending on what the page
  documents.
- "category" is a short topic label such as "authentication", "webhooks"
  or "getting started".
- "has_code_snippet" is true only when the chunk contains a fenced code
  block.
- "supported_languages" lists the programming languages appearing in the
  chunk's code blocks.
- Omit metadata fields you cannot determine. Do not invent values.
- Respond with a fenced json code block containing a list of objects of
  the form:
  {"chunked_data": "...", "metadata": {"sdk_framework_name": "...",
  "sdk_framework": "...", "base_url": "...", "href": "...",
  "category": "...", "has_code_snippet": true, "version": "...",
  "supported_languages": ["..."]}}

**INPUT:**
%s

**OUTPUT:**`

const summaryLinksPrompt = `###TASK###
You are given the list of page URLs crawled for one documentation site.
Select the URLs whose pages together best describe the product as a
whole: overview, introduction, getting started, core concepts and
pricing/limits pages.

###INSTRUCTIONS###
- Select at most 5 URLs.
- Respond with a JSON array of the selected URL strings and nothing else.

**INPUT:**
%s

**OUTPUT:**`

const summaryPrompt = `###TASK###
You are given the content of the most representative pages of one
documentation site. Write a concise summary of the product: what it is,
what it offers, its main capabilities and supported platforms. Then emit
the summary as a single chunk with metadata.

###INSTRUCTIONS###
- The summary must be grounded in the given pages only.
- "category" must be "summary".
- Respond with a fenced json code block containing a list with exactly
  one object of the form:
  {"chunked_data": "...", "metadata": {"sdk_framework_name": "...",
  "sdk_framework": "...", "base_url": "...", "href_urls": ["..."],
  "category": "summary", "versions": ["..."]}}

**INPUT:**
%s

**OUTPUT:**`
