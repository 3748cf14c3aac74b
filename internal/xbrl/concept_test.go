package xbrl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConceptTableIsComplete(t *testing.T) {
	keys := []ConceptKey{
		ConceptRevenue, ConceptNetIncome, ConceptTotalAssets, ConceptEquity,
		ConceptShortTermDebt, ConceptLongTermDebt, ConceptEntityName, ConceptTaxID,
	}

	assert.Len(t, conceptTable, len(keys))
	for _, key := range keys {
		concept := conceptByKey(key)
		assert.NotEmpty(t, concept.Aliases, "concept %s must have aliases", key)
	}

	assert.False(t, conceptByKey(ConceptEntityName).Contextual)
	assert.False(t, conceptByKey(ConceptTaxID).Contextual)
	assert.True(t, conceptByKey(ConceptRevenue).Contextual)
}

func TestResolveConceptPrimaryAlias(t *testing.T) {
	doc, err := ParseDocument([]byte(`<xbrl>
	  <ValoreProduzioneRicaviVenditePrestazioni contextRef="c_2023">1.000.000</ValoreProduzioneRicaviVenditePrestazioni>
	</xbrl>`))
	require.NoError(t, err)

	raw := ResolveConcept(doc, conceptByKey(ConceptRevenue), "c_2023")
	require.NotNil(t, raw)
	assert.Equal(t, "1.000.000", *raw)
}

func TestResolveConceptAliasFallback(t *testing.T) {
	// Primary alias absent: the secondary spelling must win unchanged.
	doc, err := ParseDocument([]byte(`<xbrl>
	  <RicaviDelleVenditeEDellePrestazioni contextRef="c_2023">750.500,25</RicaviDelleVenditeEDellePrestazioni>
	</xbrl>`))
	require.NoError(t, err)

	raw := ResolveConcept(doc, conceptByKey(ConceptRevenue), "c_2023")
	require.NotNil(t, raw)
	assert.Equal(t, "750.500,25", *raw)
}

func TestResolveConceptFirstHitStopsResolution(t *testing.T) {
	// Both aliases present: the higher-priority alias wins even when a
	// later alias carries a different value.
	doc, err := ParseDocument([]byte(`<xbrl>
	  <RicaviDelleVenditeEDellePrestazioni contextRef="c_2023">2</RicaviDelleVenditeEDellePrestazioni>
	  <ValoreProduzioneRicaviVenditePrestazioni contextRef="c_2023">1</ValoreProduzioneRicaviVenditePrestazioni>
	</xbrl>`))
	require.NoError(t, err)

	raw := ResolveConcept(doc, conceptByKey(ConceptRevenue), "c_2023")
	require.NotNil(t, raw)
	assert.Equal(t, "1", *raw)
}

func TestResolveConceptRespectsContext(t *testing.T) {
	doc, err := ParseDocument([]byte(`<xbrl>
	  <TotaleAttivo contextRef="c_2022">900</TotaleAttivo>
	  <TotaleAttivo contextRef="c_2023">1.000</TotaleAttivo>
	</xbrl>`))
	require.NoError(t, err)

	raw := ResolveConcept(doc, conceptByKey(ConceptTotalAssets), "c_2023")
	require.NotNil(t, raw)
	assert.Equal(t, "1.000", *raw)

	assert.Nil(t, ResolveConcept(doc, conceptByKey(ConceptTotalAssets), "c_2021"),
		"a value bound to another period must not leak into the requested one")
}

func TestResolveConceptSkipsEmptyText(t *testing.T) {
	doc, err := ParseDocument([]byte(`<xbrl>
	  <ValoreProduzioneRicaviVenditePrestazioni contextRef="c_2023">   </ValoreProduzioneRicaviVenditePrestazioni>
	  <RicaviDelleVenditeEDellePrestazioni contextRef="c_2023">12,5</RicaviDelleVenditeEDellePrestazioni>
	</xbrl>`))
	require.NoError(t, err)

	raw := ResolveConcept(doc, conceptByKey(ConceptRevenue), "c_2023")
	require.NotNil(t, raw)
	assert.Equal(t, "12,5", *raw)
}

func TestResolveConceptNonContextualIgnoresContext(t *testing.T) {
	doc, err := ParseDocument([]byte(`<xbrl>
	  <DatiAnagraficiDenominazione contextRef="c_anything">ACME S.R.L.</DatiAnagraficiDenominazione>
	</xbrl>`))
	require.NoError(t, err)

	raw := ResolveConcept(doc, conceptByKey(ConceptEntityName), "")
	require.NotNil(t, raw)
	assert.Equal(t, "ACME S.R.L.", *raw)
}

func TestResolveConceptMissingIsNil(t *testing.T) {
	doc, err := ParseDocument([]byte(`<xbrl><Unrelated contextRef="c_2023">1</Unrelated></xbrl>`))
	require.NoError(t, err)

	assert.Nil(t, ResolveConcept(doc, conceptByKey(ConceptEquity), "c_2023"))
}
