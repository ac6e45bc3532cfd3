package domain

import "testing"

func doc(kind DocumentKind, status ReviewStatus) Document {
	return Document{Kind: kind, Status: status}
}

func TestAggregateVendorStatus_AllApproved(t *testing.T) {
	docs := []Document{
		doc(DocBusinessLicense, StatusApproved),
		doc(DocTaxCertificate, StatusApproved),
		doc(DocIdentityProof, StatusApproved),
	}
	if got := AggregateVendorStatus(docs); got != StatusApproved {
		t.Fatalf("expected approved, got %v", got)
	}
}

func TestAggregateVendorStatus_AnyRejected(t *testing.T) {
	docs := []Document{
		doc(DocBusinessLicense, StatusApproved),
		doc(DocTaxCertificate, StatusRejected),
		doc(DocIdentityProof, StatusApproved),
	}
	if got := AggregateVendorStatus(docs); got != StatusRejected {
		t.Fatalf("expected rejected, got %v", got)
	}
}

func TestAggregateVendorStatus_MissingRequiredKind(t *testing.T) {
	docs := []Document{
		doc(DocBusinessLicense, StatusApproved),
		doc(DocTaxCertificate, StatusApproved),
	}
	if got := AggregateVendorStatus(docs); got != StatusPending {
		t.Fatalf("expected pending, got %v", got)
	}
}

func TestAggregateVendorStatus_PendingDocument(t *testing.T) {
	docs := []Document{
		doc(DocBusinessLicense, StatusApproved),
		doc(DocTaxCertificate, StatusApproved),
		doc(DocIdentityProof, StatusPending),
	}
	if got := AggregateVendorStatus(docs); got != StatusPending {
		t.Fatalf("expected pending, got %v", got)
	}
}

// A re-uploaded document supersedes the earlier one of the same kind.
func TestAggregateVendorStatus_ResubmissionSupersedes(t *testing.T) {
	docs := []Document{
		doc(DocBusinessLicense, StatusRejected),
		doc(DocTaxCertificate, StatusApproved),
		doc(DocIdentityProof, StatusApproved),
		doc(DocBusinessLicense, StatusApproved), // newer upload, later in order
	}
	if got := AggregateVendorStatus(docs); got != StatusApproved {
		t.Fatalf("expected approved, got %v", got)
	}
}

func TestAggregateVendorStatus_NoDocuments(t *testing.T) {
	if got := AggregateVendorStatus(nil); got != StatusPending {
		t.Fatalf("expected pending, got %v", got)
	}
}

func TestDecisionStatus(t *testing.T) {
	if st, ok := DecisionApprove.Status(); !ok || st != StatusApproved {
		t.Fatalf("approve: got %v %v", st, ok)
	}
	if st, ok := DecisionReject.Status(); !ok || st != StatusRejected {
		t.Fatalf("reject: got %v %v", st, ok)
	}
	if _, ok := Decision("cancel").Status(); ok {
		t.Fatal("unknown decision must not map")
	}
}
