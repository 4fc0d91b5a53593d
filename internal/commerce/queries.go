package commerce

const productFields = `
  id
  handle
  title
  description
  productType
  vendor
  tags
  priceRange { minVariantPrice { amount currencyCode } }
  images(first: 10) { edges { node { url altText width height } } }
  variants(first: 20) {
    edges {
      node {
        id
        title
        availableForSale
        price { amount currencyCode }
        compareAtPrice { amount currencyCode }
      }
    }
  }
  metafields(identifiers: [
    {namespace: "custom", key: "category"},
    {namespace: "custom", key: "rating"},
    {namespace: "custom", key: "features"}
  ]) { key value }
`

const cartFields = `
  id
  checkoutUrl
  cost { totalAmount { amount currencyCode } }
  lines(first: 100) {
    edges {
      node {
        id
        quantity
        attributes { key value }
        merchandise { ... on ProductVariant { id } }
      }
    }
  }
`

const listProductsQuery = `query ListProducts($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    pageInfo { hasNextPage endCursor }
    edges { node {` + productFields + `} }
  }
}`

const productByHandleQuery = `query ProductByHandle($handle: String!) {
  product(handle: $handle) {` + productFields + `
    descriptionHtml
  }
}`

const cartCreateMutation = `mutation CartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart {` + cartFields + `}
    userErrors { code field message }
  }
}`

const cartQuery = `query Cart($id: ID!) {
  cart(id: $id) {` + cartFields + `}
}`

const cartLinesRemoveMutation = `mutation CartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart { id }
    userErrors { code field message }
  }
}`

const cartLinesAddMutation = `mutation CartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart {` + cartFields + `}
    userErrors { code field message }
  }
}`

const customerAccessTokenCreateMutation = `mutation CustomerAccessTokenCreate($input: CustomerAccessTokenCreateInput!) {
  customerAccessTokenCreate(input: $input) {
    customerAccessToken { accessToken expiresAt }
    customerUserErrors { code field message }
  }
}`

const customerAccessTokenDeleteMutation = `mutation CustomerAccessTokenDelete($customerAccessToken: String!) {
  customerAccessTokenDelete(customerAccessToken: $customerAccessToken) {
    deletedAccessToken
    userErrors { field message }
  }
}`

const customerCreateMutation = `mutation CustomerCreate($input: CustomerCreateInput!) {
  customerCreate(input: $input) {
    customer { id email firstName lastName phone }
    customerUserErrors { code field message }
  }
}`

const customerQuery = `query Customer($customerAccessToken: String!) {
  customer(customerAccessToken: $customerAccessToken) {
    id
    email
    firstName
    lastName
    phone
    defaultAddress { address1 address2 city province country zip phone }
  }
}`

const customerOrdersQuery = `query CustomerOrders($customerAccessToken: String!, $first: Int!) {
  customer(customerAccessToken: $customerAccessToken) {
    orders(first: $first, sortKey: PROCESSED_AT, reverse: true) {
      edges {
        node {
          id
          name
          orderNumber
          processedAt
          financialStatus
          fulfillmentStatus
          totalPrice { amount currencyCode }
          lineItems(first: 50) {
            edges {
              node {
                title
                quantity
                customAttributes { key value }
                variant { id image { url } price { amount currencyCode } }
              }
            }
          }
        }
      }
    }
  }
}`

var documents = []string{
	listProductsQuery,
	productByHandleQuery,
	cartCreateMutation,
	cartQuery,
	cartLinesRemoveMutation,
	cartLinesAddMutation,
	customerAccessTokenCreateMutation,
	customerAccessTokenDeleteMutation,
	customerCreateMutation,
	customerQuery,
	customerOrdersQuery,
}
