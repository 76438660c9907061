package eutils

import (
	"context"
	"net/http"
	"testing"
)

const summaryV1XML = `<?xml version="1.0"?>
<eSummaryResult>
  <DocSum>
    <Id>11748933</Id>
    <Item Name="Title" Type="String">The p53 network.</Item>
    <Item Name="PubDate" Type="Date">2000 Nov 16</Item>
    <Item Name="AuthorList" Type="List">
      <Item Name="Author" Type="String">Smith J</Item>
      <Item Name="Author" Type="String">Jones K</Item>
    </Item>
  </DocSum>
</eSummaryResult>`

const summaryV2XML = `<?xml version="1.0"?>
<eSummaryResult>
  <DocumentSummarySet status="OK">
    <DocumentSummary uid="11748933">
      <Title>The p53 network.</Title>
      <PubDate>2000 Nov 16</PubDate>
      <SortPubDate>2000/11/16 00:00</SortPubDate>
    </DocumentSummary>
  </DocumentSummarySet>
</eSummaryResult>`

func Test_Summary_v1(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return textResponse(200, summaryV1XML), nil
	})

	result, err := c.Summary(context.Background(), "pubmed", []string{"11748933"}, SummaryOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if result.Version != "1.0" || len(result.DocSums) != 1 {
		t.Fatalf("result = %+v", result)
	}
	doc := result.DocSums[0]
	if doc.UID != "11748933" {
		t.Errorf("UID = %q", doc.UID)
	}
	if doc.Fields["Title"] != "The p53 network." {
		t.Errorf("Title = %v", doc.Fields["Title"])
	}
	authors, ok := doc.Fields["AuthorList"].(map[string]any)
	if !ok {
		t.Fatalf("AuthorList = %T", doc.Fields["AuthorList"])
	}
	list, ok := authors["Author"].([]any)
	if !ok || len(list) != 2 || list[1] != "Jones K" {
		t.Errorf("authors = %v", authors["Author"])
	}
}

func Test_Summary_v2(t *testing.T) {
	var gotVersion string
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		gotVersion = r.URL.Query().Get("version")
		return textResponse(200, summaryV2XML), nil
	})

	result, err := c.Summary(context.Background(), "pubmed", []string{"11748933"},
		SummaryOptions{Version: "2.0"})
	if err != nil {
		t.Fatal(err)
	}

	if gotVersion != "2.0" {
		t.Errorf("version param = %q", gotVersion)
	}
	if len(result.DocSums) != 1 || result.DocSums[0].UID != "11748933" {
		t.Fatalf("docsums = %+v", result.DocSums)
	}
	if result.DocSums[0].Fields["Title"] != "The p53 network." {
		t.Errorf("Title = %v", result.DocSums[0].Fields["Title"])
	}
}

func Test_Summary_validation(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		t.Fatal("invalid parameters must not reach the network")
		return nil, nil
	})

	ctx := context.Background()
	if _, err := c.Summary(ctx, "pubmed", nil, SummaryOptions{}); err == nil {
		t.Error("missing IDs and history accepted")
	}
	if _, err := c.Summary(ctx, "pubmed", []string{"1"}, SummaryOptions{Version: "3.0"}); err == nil {
		t.Error("unknown version accepted")
	}
}

const linkXML = `<?xml version="1.0"?>
<eLinkResult>
  <LinkSet>
    <DbFrom>pubmed</DbFrom>
    <IdList>
      <Id>11748933</Id>
    </IdList>
    <LinkSetDb>
      <DbTo>protein</DbTo>
      <LinkName>pubmed_protein</LinkName>
      <Link><Id>15718680</Id></Link>
      <Link><Id>157427902</Id></Link>
    </LinkSetDb>
  </LinkSet>
  <LinkSet>
    <DbFrom>pubmed</DbFrom>
    <IdList>
      <Id>11700088</Id>
    </IdList>
  </LinkSet>
</eLinkResult>`

func Test_Link(t *testing.T) {
	var gotIDs []string
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		gotIDs = r.URL.Query()["id"]
		return textResponse(200, linkXML), nil
	})

	sets, err := c.Link(context.Background(), "pubmed", "protein", LinkOptions{
		IDs: []string{"11748933", "11700088"},
	})
	if err != nil {
		t.Fatal(err)
	}

	// separate id parameters keep the service in by-ID mode
	if len(gotIDs) != 2 {
		t.Errorf("id params = %v", gotIDs)
	}

	if len(sets) != 2 {
		t.Fatalf("got %d link sets, want 2", len(sets))
	}
	first := sets[0]
	if first.DBFrom != "pubmed" || len(first.IDs) != 1 || first.IDs[0] != "11748933" {
		t.Errorf("first set = %+v", first)
	}
	if len(first.Links) != 1 {
		t.Fatalf("links = %+v", first.Links)
	}
	link := first.Links[0]
	if link.DBTo != "protein" || link.LinkName != "pubmed_protein" || len(link.IDs) != 2 {
		t.Errorf("link = %+v", link)
	}
	if len(sets[1].Links) != 0 {
		t.Errorf("second set has links: %+v", sets[1].Links)
	}
}

const dbListXML = `<?xml version="1.0"?>
<eInfoResult>
  <DbList>
    <DbName>pubmed</DbName>
    <DbName>protein</DbName>
    <DbName>nuccore</DbName>
  </DbList>
</eInfoResult>`

const dbInfoXML = `<?xml version="1.0"?>
<eInfoResult>
  <DbInfo>
    <DbName>pubmed</DbName>
    <Description>PubMed bibliographic record</Description>
    <Count>36500000</Count>
    <LastUpdate>2024/01/15 08:10</LastUpdate>
    <FieldList>
      <Field>
        <Name>TITL</Name>
        <FullName>Title</FullName>
        <Description>Words in title of publication</Description>
        <TermCount>164000000</TermCount>
        <IsDate>N</IsDate>
        <IsNumerical>N</IsNumerical>
        <IsHierarchy>N</IsHierarchy>
      </Field>
    </FieldList>
    <LinkList>
      <Link>
        <Name>pubmed_protein</Name>
        <Description>Published protein sequences</Description>
        <DbTo>protein</DbTo>
      </Link>
    </LinkList>
  </DbInfo>
</eInfoResult>`

func Test_Databases(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return textResponse(200, dbListXML), nil
	})

	names, err := c.Databases(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 3 || names[0] != "pubmed" || names[2] != "nuccore" {
		t.Errorf("names = %v", names)
	}
}

func Test_Info(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return textResponse(200, dbInfoXML), nil
	})

	info, err := c.Info(context.Background(), "pubmed")
	if err != nil {
		t.Fatal(err)
	}

	if info.Name != "pubmed" || info.Count != 36500000 {
		t.Errorf("info = %+v", info)
	}
	if len(info.Fields) != 1 {
		t.Fatalf("fields = %+v", info.Fields)
	}
	field := info.Fields[0]
	if field.Name != "TITL" || field.TermCount != 164000000 || field.IsDate {
		t.Errorf("field = %+v", field)
	}
	if len(info.Links) != 1 || info.Links[0].DBTo != "protein" {
		t.Errorf("links = %+v", info.Links)
	}
}

const gqueryXML = `<?xml version="1.0"?>
<Result>
  <Term>p53</Term>
  <eGQueryResult>
    <ResultItem>
      <DbName>pubmed</DbName>
      <MenuName>PubMed</MenuName>
      <Count>120345</Count>
      <Status>Ok</Status>
    </ResultItem>
    <ResultItem>
      <DbName>protein</DbName>
      <MenuName>Protein</MenuName>
      <Count>88</Count>
      <Status>Ok</Status>
    </ResultItem>
  </eGQueryResult>
</Result>`

func Test_GlobalQuery(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return textResponse(200, gqueryXML), nil
	})

	result, err := c.GlobalQuery(context.Background(), "p53")
	if err != nil {
		t.Fatal(err)
	}

	if result.Term != "p53" || len(result.Databases) != 2 {
		t.Fatalf("result = %+v", result)
	}
	if result.Databases[0].DB != "pubmed" || result.Databases[0].Count != 120345 {
		t.Errorf("first count = %+v", result.Databases[0])
	}
	if result.Databases[1].Count != 88 || result.Databases[1].Status != "Ok" {
		t.Errorf("second count = %+v", result.Databases[1])
	}
}

const spellXML = `<?xml version="1.0"?>
<eSpellResult>
  <Database>pubmed</Database>
  <Query>canser treatmnt</Query>
  <CorrectedQuery>cancer treatment</CorrectedQuery>
  <SpelledQuery>
    <Replaced>cancer</Replaced>
    <Original> </Original>
    <Replaced>treatment</Replaced>
  </SpelledQuery>
</eSpellResult>`

func Test_Spell(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return textResponse(200, spellXML), nil
	})

	result, err := c.Spell(context.Background(), "pubmed", "canser treatmnt")
	if err != nil {
		t.Fatal(err)
	}

	if result.CorrectedQuery != "cancer treatment" {
		t.Errorf("corrected = %q", result.CorrectedQuery)
	}
	if result.Query != "canser treatmnt" || result.Database != "pubmed" {
		t.Errorf("result = %+v", result)
	}
	if len(result.Replaced) != 2 || result.Replaced[0].Original != "cancer" {
		t.Errorf("replaced = %+v", result.Replaced)
	}
}

func Test_CitMatch(t *testing.T) {
	var gotBdata string
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		gotBdata = r.URL.Query().Get("bdata")
		return textResponse(200,
			"proc natl acad sci u s a|1991|88|3248|mann bj|citation_1|2014248\n"), nil
	})

	body, err := c.CitMatch(context.Background(),
		[]string{"proc natl acad sci u s a|1991|88|3248|mann bj|citation_1|"})
	if err != nil {
		t.Fatal(err)
	}
	if gotBdata == "" {
		t.Fatal("bdata parameter not sent")
	}

	matches := ParseCitations(body)
	if len(matches) != 1 {
		t.Fatalf("matches = %+v", matches)
	}
	if matches[0].PMID != "2014248" || matches[0].Journal != "proc natl acad sci u s a" {
		t.Errorf("match = %+v", matches[0])
	}

	// citations missing pipe fields never reach the network
	if _, err := c.CitMatch(context.Background(), []string{"just a title"}); err == nil {
		t.Error("malformed citation accepted")
	}
	if _, err := c.CitMatch(context.Background(), nil); err == nil {
		t.Error("empty citation list accepted")
	}
}

func Test_CitMatch_multiline(t *testing.T) {
	var gotBdata string
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		gotBdata = r.URL.Query().Get("bdata")
		return textResponse(200, ""), nil
	})

	citations := []string{
		Citation{Journal: "science", Year: "1987", Volume: "235", Page: "182",
			Author: "palmenberg ac", Key: "cit_a"}.String(),
		Citation{Journal: "nature", Year: "2000", Volume: "408", Page: "307",
			Author: "vogelstein b", Key: "cit_b"}.String(),
	}
	if _, err := c.CitMatch(context.Background(), citations); err != nil {
		t.Fatal(err)
	}

	// entries are carriage-return separated on the wire
	want := citations[0] + "\r" + citations[1]
	if gotBdata != want {
		t.Errorf("bdata = %q, want %q", gotBdata, want)
	}
}

func Test_ParseCitations_skipsJunk(t *testing.T) {
	body := "\nproc natl acad sci|1991|88|3248|mann bj|key1|2014248\nnot enough fields\n\n"
	matches := ParseCitations(body)
	if len(matches) != 1 || matches[0].Key != "key1" {
		t.Errorf("matches = %+v", matches)
	}
}
